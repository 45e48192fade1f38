package bookingservice

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrUnavailable возвращается, когда booking-сервис недоступен
	// (транспортная ошибка или 5xx) - всегда восстановимая ошибка
	ErrUnavailable = errors.New("bookingservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")

	// ErrRejected возвращается, когда сервис отклонил запрос (4xx без
	// специальной семантики)
	ErrRejected = errors.New("bookingservice client: request rejected")

	// ErrTokenInvalid возвращается, когда токен переноса не найден или истёк
	// Единственная фатальная ошибка workflow: сессия переноса завершается
	ErrTokenInvalid = errors.New("bookingservice client: reschedule token invalid or expired")
)

// ConflictError возвращается на 409 при фиксации переноса: выбранный слот
// был занят параллельной записью. Несёт актуальный список слотов из ответа
// сервиса, чтобы клиент мог перевыбрать без повторного запроса
type ConflictError struct {
	Message        string
	AvailableSlots []SlotDTO
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("bookingservice client: slot conflict: %s", e.Message)
}
