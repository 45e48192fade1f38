package domain

// RescheduleStatus состояние сессии переноса приёма
type RescheduleStatus string

const (
	RescheduleResolving  RescheduleStatus = "resolving"
	RescheduleActive     RescheduleStatus = "active"
	RescheduleSubmitting RescheduleStatus = "submitting"
	RescheduleDone       RescheduleStatus = "done"
	RescheduleExpired    RescheduleStatus = "expired"
)

// AppointmentSummary краткая информация о переносимом приёме
// Токен сам по себе является авторизацией: отдельного подтверждения
// личности при переносе не требуется
type AppointmentSummary struct {
	Doctor      string
	DoctorEmail string
}

// IsTerminal возвращает true для состояний, из которых сессия не выходит
func (s RescheduleStatus) IsTerminal() bool {
	return s == RescheduleDone || s == RescheduleExpired
}

// CanPickSlot возвращает true, если в этом состоянии можно выбирать дату и слот
func (s RescheduleStatus) CanPickSlot() bool {
	return s == RescheduleActive
}
