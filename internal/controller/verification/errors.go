package verification

import "errors"

var (
	// ErrEmailRequired возвращается при запросе кода без указанного email
	ErrEmailRequired = errors.New("verification: email is required")

	// ErrCodeRequired возвращается при проверке пустого кода
	ErrCodeRequired = errors.New("verification: code is required")

	// ErrNoCodeRequested возвращается при проверке кода до его запроса
	ErrNoCodeRequested = errors.New("verification: no code has been requested")

	// ErrCodeMismatch возвращается, когда сервис отклонил код
	// Состояние остаётся OtpRequested: пользователь может повторить ввод
	// без повторного запроса кода
	ErrCodeMismatch = errors.New("verification: code does not match")

	// ErrSendFailed возвращается при сбое отправки кода (восстановимая ошибка)
	ErrSendFailed = errors.New("verification: failed to send code")

	// ErrVerifyFailed возвращается при транспортном сбое проверки кода
	ErrVerifyFailed = errors.New("verification: failed to verify code")
)
