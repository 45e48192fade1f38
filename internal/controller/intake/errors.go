package intake

import "errors"

var (
	// ErrValidation возвращается при нарушении правил валидации формы
	// Проверка выполняется локально, без обращения к booking-сервису
	ErrValidation = errors.New("intake: validation failed")

	// ErrEmailNotVerified возвращается при попытке отправки без
	// подтверждённого email
	ErrEmailNotVerified = errors.New("intake: email is not verified")

	// ErrNoSlotSelected возвращается при попытке отправки без выбранного слота
	ErrNoSlotSelected = errors.New("intake: no time slot selected")

	// ErrUnknownField возвращается при попытке установить неизвестное поле
	ErrUnknownField = errors.New("intake: unknown form field")

	// ErrUnknownDoctor возвращается, когда выбранного врача нет в списке
	// подходящих для текущих города и заболевания
	ErrUnknownDoctor = errors.New("intake: doctor is not in the eligible set")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("intake: invalid date format")

	// ErrSubmitInFlight возвращается при повторной отправке, пока предыдущая
	// не завершилась
	ErrSubmitInFlight = errors.New("intake: submission already in progress")

	// ErrSubmitFailed возвращается при сбое создания записи
	// Данные формы при этом сохраняются: пользователь может повторить отправку
	ErrSubmitFailed = errors.New("intake: failed to create appointment")
)
