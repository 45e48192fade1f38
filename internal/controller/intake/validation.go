package intake

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// validateForm проверяет все правила формы перед отправкой
// Выполняется локально: при любом нарушении запрос в booking-сервис не уходит
func validateForm(form *domain.AppointmentRequest, selected types.TimeString, verified bool, now time.Time) error {
	if form.FullName == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(form.FullName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrValidation)
	}

	if form.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}

	if form.Phone == "" {
		return fmt.Errorf("%w: mobile is required", ErrValidation)
	}
	if !phonePattern.MatchString(form.Phone) {
		return fmt.Errorf("%w: invalid mobile number", ErrValidation)
	}

	if form.State == "" {
		return fmt.Errorf("%w: state is required", ErrValidation)
	}
	if form.City == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if form.Disease == "" {
		return fmt.Errorf("%w: disease is required", ErrValidation)
	}
	if form.Doctor == "" {
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	}

	if form.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if isDateInPast(form.Date, now) {
		return fmt.Errorf("%w: date cannot be in the past", ErrValidation)
	}

	if len(form.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrValidation)
	}

	if selected.IsZero() {
		return ErrNoSlotSelected
	}

	if !verified {
		return ErrEmailNotVerified
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
