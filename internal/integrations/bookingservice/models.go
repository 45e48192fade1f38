package bookingservice

// SlotDTO модель слота из booking-сервиса
type SlotDTO struct {
	Start  string `json:"start"`  // "09:00"
	Booked bool   `json:"booked"`
}

// SlotsResponse ответ на запрос слотов врача на дату
type SlotsResponse struct {
	AvailableSlots []SlotDTO `json:"availableSlots"`
	Message        string    `json:"message"`
}

// OTPRequest запрос на отправку одноразового кода
type OTPRequest struct {
	Email string `json:"Email"`
}

// OTPVerifyRequest запрос на проверку одноразового кода
type OTPVerifyRequest struct {
	Email string `json:"Email"`
	Otp   string `json:"Otp"`
}

// OTPVerifyResponse результат проверки кода
type OTPVerifyResponse struct {
	Success bool `json:"success"`
}

// AppointmentPayload заявка на приём, отправляемая в booking-сервис
type AppointmentPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Disease  string `json:"disease"`
	State    string `json:"state"`
	City     string `json:"city"`
	Date     string `json:"date"` // "2025-10-15"
	Doctor   string `json:"doctor"`
	Time     string `json:"time"` // "09:00"
	Reason   string `json:"reason"`
}

// AppointmentSummaryDTO краткая информация о приёме в ответе на resolve токена
type AppointmentSummaryDTO struct {
	Doctor      string `json:"doctor"`
	DoctorEmail string `json:"doctorEmail"`
}

// RescheduleResponse ответ на resolve токена переноса
// Slots относятся либо к исходной дате приёма, либо к дате из query-параметра
type RescheduleResponse struct {
	Appointment AppointmentSummaryDTO `json:"appointment"`
	Slots       []SlotDTO             `json:"slots"`
	Message     string                `json:"message"`
}

// ReschedulePayload запрос на фиксацию переноса
type ReschedulePayload struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ErrorResponse модель ошибки от booking-сервиса
type ErrorResponse struct {
	Message        string    `json:"message"`
	AvailableSlots []SlotDTO `json:"availableSlots,omitempty"`
}
