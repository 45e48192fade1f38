package domain

// VerificationStatus состояние подтверждения email
type VerificationStatus string

const (
	VerificationUnverified   VerificationStatus = "unverified"
	VerificationOtpRequested VerificationStatus = "otp_requested"
	VerificationVerified     VerificationStatus = "verified"
)

// VerificationState состояние sub-flow подтверждения email
// Инвариант: Verified выставляется только после успешного ответа
// booking-сервиса на проверку кода, никогда не выводится из OtpRequested
type VerificationState struct {
	Email  string
	Status VerificationStatus
}

// IsVerified возвращает true, если email подтверждён
func (v *VerificationState) IsVerified() bool {
	return v.Status == VerificationVerified
}

// OtpSent возвращает true, если код уже был запрошен
func (v *VerificationState) OtpSent() bool {
	return v.Status == VerificationOtpRequested || v.Status == VerificationVerified
}

// Reset сбрасывает состояние в начальное (после успешной записи
// или при редактировании email)
func (v *VerificationState) Reset() {
	v.Email = ""
	v.Status = VerificationUnverified
}
