package reschedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/internal/domain"
	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	"github.com/m04kA/HSC-AppointmentService/pkg/ptr"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

// Controller контроллер переноса приёма по токену
//
// Машина состояний: Resolving -> Active -> {Submitting -> Done |
// Conflict -> Active | Expired}. Токен сам по себе является авторизацией,
// отдельного подтверждения личности не требуется. Единственная фатальная
// ошибка - недействительный токен; всё остальное восстановимо
type Controller struct {
	booking      BookingServiceClient
	slots        *slotview.View
	timeProvider TimeProvider
	log          Logger

	mu            sync.Mutex
	token         string
	status        domain.RescheduleStatus
	summary       domain.AppointmentSummary
	date          string
	submitting    bool
	dateGen       uint64
	cancelResolve context.CancelFunc
}

// NewController создает контроллер переноса в состоянии Resolving
func NewController(token string, booking BookingServiceClient, log Logger) *Controller {
	return &Controller{
		booking:      booking,
		slots:        slotview.NewView(booking, log),
		timeProvider: &RealTimeProvider{},
		log:          log,
		token:        token,
		status:       domain.RescheduleResolving,
	}
}

// Resolve обменивает токен на данные приёма и исходный набор слотов
// Недействительный токен переводит сессию в Expired - это терминальное
// состояние, вызывающая сторона обязана перенаправить пользователя.
// Транспортный сбой оставляет сессию в Resolving: resolve можно повторить
func (c *Controller) Resolve(ctx context.Context) error {
	c.mu.Lock()
	if c.status != domain.RescheduleResolving {
		c.mu.Unlock()
		return ErrNotActive
	}
	token := c.token
	c.mu.Unlock()

	resp, err := c.booking.ResolveReschedule(ctx, token, nil)
	if err != nil {
		if errors.Is(err, bookingservice.ErrTokenInvalid) {
			c.log.Warn("Reschedule: token invalid or expired")
			c.mu.Lock()
			c.status = domain.RescheduleExpired
			c.mu.Unlock()
			return ErrTokenExpired
		}
		c.log.Error("Reschedule: failed to resolve token: %v", err)
		return fmt.Errorf("%w: %v", ErrResolveFailed, err)
	}

	c.mu.Lock()
	c.summary = domain.AppointmentSummary{
		Doctor:      resp.Appointment.Doctor,
		DoctorEmail: resp.Appointment.DoctorEmail,
	}
	c.status = domain.RescheduleActive
	c.mu.Unlock()

	c.slots.Replace(resp.Slots, resp.Message)

	c.log.Info("Reschedule: session active for doctor=%s", resp.Appointment.Doctor)
	return nil
}

// ChangeDate выбирает новую дату-кандидата и перезагружает слоты
// Минимально допустимая дата - "сегодня", вычисленное в момент вызова.
// Сбой загрузки оставляет сессию Active с пустым набором и сообщением.
// Загрузка защищена номером поколения: ответ для уже смененной даты
// отбрасывается и не трогает панель слотов
func (c *Controller) ChangeDate(ctx context.Context, date string) error {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := c.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return ErrDateInPast
	}

	c.mu.Lock()
	if c.status != domain.RescheduleActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	// Новый выбор даты отменяет предыдущий in-flight запрос
	if c.cancelResolve != nil {
		c.cancelResolve()
		c.cancelResolve = nil
	}
	c.dateGen++
	gen := c.dateGen
	c.date = date
	token := c.token

	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelResolve = cancel
	c.mu.Unlock()

	resp, err := c.booking.ResolveReschedule(fetchCtx, token, ptr.Ptr(date))

	c.mu.Lock()
	if gen != c.dateGen {
		c.mu.Unlock()
		// Дата успела смениться - ответ устарел
		c.log.Info("Reschedule: discarding stale slots response for date=%s", date)
		return nil
	}
	c.cancelResolve = nil
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, bookingservice.ErrTokenInvalid) {
			c.log.Warn("Reschedule: token expired while changing date")
			c.mu.Lock()
			c.status = domain.RescheduleExpired
			c.mu.Unlock()
			return ErrTokenExpired
		}
		// Восстановимо: пустой набор и сообщение, сессия остаётся Active
		c.log.Warn("Reschedule: failed to load slots for date=%s: %v", date, err)
		c.slots.Replace(nil, MsgLoadFailed)
		return nil
	}

	c.slots.Replace(resp.Slots, resp.Message)
	return nil
}

// SelectSlot выбирает слот на дату-кандидата
func (c *Controller) SelectSlot(start types.TimeString) error {
	c.mu.Lock()
	if !c.status.CanPickSlot() {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.date == "" {
		c.mu.Unlock()
		return ErrNoDateSelected
	}
	c.mu.Unlock()

	return c.slots.Select(start)
}

// Submit фиксирует перенос на выбранные дату и слот
//
// 409 от сервиса означает, что слот занят параллельной записью: выбор
// времени сбрасывается, панель заменяется свежим списком из ответа, сессия
// возвращается в Active - пользователь перевыбирает без повторного ввода
// даты. Прочие сбои восстановимы и не меняют состояние, кроме снятия
// флага отправки
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status != domain.RescheduleActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.date == "" {
		c.mu.Unlock()
		return ErrNoDateSelected
	}
	selected := c.slots.Selected()
	if selected.IsZero() {
		c.mu.Unlock()
		return ErrNoSlotSelected
	}
	c.submitting = true
	c.status = domain.RescheduleSubmitting
	token := c.token
	date := c.date
	c.mu.Unlock()

	// Гарантированное снятие флага независимо от исхода
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	err := c.booking.SubmitReschedule(ctx, token, date, selected.String())
	if err == nil {
		c.mu.Lock()
		c.status = domain.RescheduleDone
		c.mu.Unlock()
		c.log.Info("Reschedule: appointment moved to date=%s time=%s", date, selected)
		return nil
	}

	var conflict *bookingservice.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.log.Warn("Reschedule: slot conflict for date=%s time=%s: %s", date, selected, conflict.Message)
		c.mu.Lock()
		c.status = domain.RescheduleActive
		c.mu.Unlock()
		// Replace сбрасывает выбранное время и показывает актуальный набор
		c.slots.Replace(conflict.AvailableSlots, conflict.Message)
		return fmt.Errorf("%w: %s", ErrSlotConflict, conflict.Message)

	case errors.Is(err, bookingservice.ErrTokenInvalid):
		c.log.Warn("Reschedule: token expired on submit")
		c.mu.Lock()
		c.status = domain.RescheduleExpired
		c.mu.Unlock()
		return ErrTokenExpired

	default:
		c.log.Error("Reschedule: submit failed for date=%s time=%s: %v", date, selected, err)
		c.mu.Lock()
		c.status = domain.RescheduleActive
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
}

// Snapshot возвращает срез текущего состояния сессии переноса
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	status := c.status
	summary := c.summary
	date := c.date
	submitting := c.submitting
	c.mu.Unlock()

	return Snapshot{
		Status:      status,
		Appointment: summary,
		Date:        date,
		SlotView:    c.slots.Snapshot(),
		Submitting:  submitting,
	}
}

// Status возвращает текущее состояние сессии
func (c *Controller) Status() domain.RescheduleStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Close отменяет in-flight запросы сессии
// Завершившийся после Close запрос становится no-op
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancelResolve != nil {
		c.cancelResolve()
		c.cancelResolve = nil
	}
	c.dateGen++
	c.mu.Unlock()

	c.slots.Close()
}
