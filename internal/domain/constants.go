package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	PhoneDigits     = 10
	OtpCodeLength   = 6
	MaxReasonLength = 500
	MaxNameLength   = 100
)
