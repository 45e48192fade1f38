package reschedule

import "errors"

var (
	// ErrTokenExpired возвращается, когда токен переноса не найден или истёк
	// Единственная фатальная ошибка: сессия завершается, пользователя
	// перенаправляют на безопасную страницу
	ErrTokenExpired = errors.New("reschedule: token invalid or expired")

	// ErrNotActive возвращается при операции в недопустимом состоянии сессии
	ErrNotActive = errors.New("reschedule: session is not active")

	// ErrInvalidDate возвращается при некорректной дате-кандидате
	ErrInvalidDate = errors.New("reschedule: invalid date")

	// ErrDateInPast возвращается, когда дата-кандидат раньше сегодняшней
	// "Сегодня" вычисляется в момент вызова, а не кэшируется при создании
	// сессии: сессия может пережить локальную полночь
	ErrDateInPast = errors.New("reschedule: date cannot be in the past")

	// ErrNoDateSelected возвращается при отправке без выбранной даты
	ErrNoDateSelected = errors.New("reschedule: no date selected")

	// ErrNoSlotSelected возвращается при отправке без выбранного слота
	ErrNoSlotSelected = errors.New("reschedule: no time slot selected")

	// ErrSlotConflict возвращается, когда выбранный слот был занят
	// параллельной записью; панель слотов уже обновлена свежим списком
	// из ответа сервиса, нужно перевыбрать время
	ErrSlotConflict = errors.New("reschedule: slot was taken concurrently")

	// ErrSubmitInFlight возвращается при повторной отправке, пока предыдущая
	// не завершилась
	ErrSubmitInFlight = errors.New("reschedule: submission already in progress")

	// ErrSubmitFailed возвращается при прочих сбоях фиксации переноса
	// (восстановимая ошибка, состояние сессии не меняется)
	ErrSubmitFailed = errors.New("reschedule: failed to submit")

	// ErrResolveFailed возвращается при транспортном сбое resolve токена
	// (восстановимая ошибка, можно повторить)
	ErrResolveFailed = errors.New("reschedule: failed to resolve token")
)
