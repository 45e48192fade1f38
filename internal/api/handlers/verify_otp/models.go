package verify_otp

// VerifyOtpRequest HTTP request model
type VerifyOtpRequest struct {
	Otp string `json:"otp"`
}

// VerifyOtpResponse HTTP response model
type VerifyOtpResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}
