package intake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/HSC-AppointmentService/internal/controller/refdata"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/verification"
	"github.com/m04kA/HSC-AppointmentService/internal/domain"
	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

// Controller контроллер формы записи на приём
//
// Владеет полями заявки, состоянием подтверждения email и каскадом
// зависимых выборок: state -> city -> doctors; {city, disease} -> doctors;
// {doctor, date} -> slots. Изменение верхнего поля каскада очищает все
// зависящие от него нижние выборы
type Controller struct {
	booking      BookingServiceClient
	refdata      *refdata.Loader
	slots        *slotview.View
	gate         *verification.Gate
	timeProvider TimeProvider
	log          Logger

	mu         sync.Mutex
	form       domain.AppointmentRequest
	submitting bool
}

// NewController создает контроллер формы записи в начальном состоянии
func NewController(booking BookingServiceClient, dir DirectoryClient, log Logger) *Controller {
	return &Controller{
		booking:      booking,
		refdata:      refdata.NewLoader(dir, log),
		slots:        slotview.NewView(booking, log),
		gate:         verification.NewGate(booking, log),
		timeProvider: &RealTimeProvider{},
		log:          log,
	}
}

// Bootstrap загружает статические справочники (штаты и заболевания)
// Вызывается один раз при создании сессии формы
func (c *Controller) Bootstrap(ctx context.Context) ([]string, []domain.Disease) {
	states := c.refdata.LoadStates(ctx)
	diseases := c.refdata.LoadDiseases(ctx)
	return states, diseases
}

// SetField устанавливает значение поля формы и применяет каскад:
// зависимые нижние выборы очищаются, зависимые справочники перезагружаются
func (c *Controller) SetField(ctx context.Context, field Field, value string) error {
	switch field {
	case FieldFullName:
		c.mu.Lock()
		c.form.FullName = value
		c.mu.Unlock()

	case FieldPhone:
		c.mu.Lock()
		c.form.Phone = value
		c.mu.Unlock()

	case FieldReason:
		c.mu.Lock()
		c.form.Reason = value
		c.mu.Unlock()

	case FieldEmail:
		// Смена адреса после запроса или подтверждения кода требует
		// повторной верификации
		c.gate.EmailChanged(value)
		c.mu.Lock()
		c.form.Email = value
		c.mu.Unlock()

	case FieldState:
		c.mu.Lock()
		c.form.State = value
		c.form.City = ""
		c.clearDoctorLocked()
		c.mu.Unlock()

		c.slots.Clear()
		c.refdata.LoadCities(ctx, value)
		c.refdata.LoadDoctors(ctx, "", "")

	case FieldCity:
		c.mu.Lock()
		c.form.City = value
		disease := c.form.Disease
		c.clearDoctorLocked()
		c.mu.Unlock()

		c.slots.Clear()
		c.refdata.LoadDoctors(ctx, value, disease)

	case FieldDisease:
		c.mu.Lock()
		c.form.Disease = value
		city := c.form.City
		c.clearDoctorLocked()
		c.mu.Unlock()

		c.slots.Clear()
		c.refdata.LoadDoctors(ctx, city, value)

	case FieldDate:
		var date time.Time
		if value != "" {
			parsed, err := time.Parse(domain.DateFormat, value)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidDate, err)
			}
			date = parsed
		}

		c.mu.Lock()
		c.form.Date = date
		c.mu.Unlock()

		c.reloadSlots(ctx)

	case FieldDoctor:
		if value == "" {
			c.mu.Lock()
			c.clearDoctorLocked()
			c.mu.Unlock()
			c.slots.Clear()
			return nil
		}

		doctor, ok := c.refdata.FindDoctorByName(value)
		if !ok {
			return ErrUnknownDoctor
		}

		c.mu.Lock()
		c.form.Doctor = doctor.Name
		c.form.DoctorEmail = doctor.Email
		c.mu.Unlock()

		c.reloadSlots(ctx)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return nil
}

// clearDoctorLocked очищает выбор врача (вызывается под c.mu)
func (c *Controller) clearDoctorLocked() {
	c.form.Doctor = ""
	c.form.DoctorEmail = ""
}

// reloadSlots перезагружает панель слотов, если выбраны врач и дата,
// иначе очищает её
func (c *Controller) reloadSlots(ctx context.Context) {
	c.mu.Lock()
	doctorEmail := c.form.DoctorEmail
	var date string
	if !c.form.Date.IsZero() {
		date = c.form.Date.Format(domain.DateFormat)
	}
	c.mu.Unlock()

	if doctorEmail == "" || date == "" {
		c.slots.Clear()
		return
	}
	c.slots.Load(ctx, doctorEmail, date)
}

// SelectSlot выбирает слот времени приёма
func (c *Controller) SelectSlot(start types.TimeString) error {
	return c.slots.Select(start)
}

// RequestCode запрашивает одноразовый код на email из формы
func (c *Controller) RequestCode(ctx context.Context) error {
	c.mu.Lock()
	email := c.form.Email
	c.mu.Unlock()

	return c.gate.RequestCode(ctx, email)
}

// VerifyCode проверяет введённый одноразовый код
func (c *Controller) VerifyCode(ctx context.Context, code string) error {
	return c.gate.VerifyCode(ctx, code)
}

// Submit валидирует форму и создает запись на приём
//
// При нарушении инвариантов (email не подтверждён, слот не выбран, ошибки
// полей) запрос в booking-сервис не отправляется. При успехе форма
// возвращается в начальное состояние. При сбое сервиса данные формы
// сохраняются; флаг отправки снимается в любом исходе
func (c *Controller) Submit(ctx context.Context) error {
	// 1. Захватываем флаг отправки: одна in-flight отправка за раз
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	form := c.form
	c.mu.Unlock()

	// Гарантированное снятие флага независимо от исхода
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	// 2. Локальная валидация: при нарушении сетевой вызов не выполняется
	selected := c.slots.Selected()
	verified := c.gate.IsVerified()
	if err := validateForm(&form, selected, verified, c.timeProvider.Now()); err != nil {
		c.log.Warn("Intake: submit validation failed: %v", err)
		return err
	}

	// 3. Отправляем заявку в booking-сервис
	payload := &bookingservice.AppointmentPayload{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Disease:  form.Disease,
		State:    form.State,
		City:     form.City,
		Date:     form.Date.Format(domain.DateFormat),
		Doctor:   form.Doctor,
		Time:     selected.String(),
		Reason:   form.Reason,
	}

	if err := c.booking.CreateAppointment(ctx, payload); err != nil {
		c.log.Error("Intake: failed to create appointment for doctor=%s date=%s: %v",
			form.Doctor, payload.Date, err)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	c.log.Info("Intake: appointment created for doctor=%s date=%s time=%s",
		form.Doctor, payload.Date, payload.Time)

	// 4. Возвращаем форму в начальное состояние: можно сразу начинать
	// следующую запись
	c.reset(ctx)
	return nil
}

// reset сбрасывает форму, подтверждение email, выбор слота и зависимые
// справочники (статические списки штатов и заболеваний сохраняются)
func (c *Controller) reset(ctx context.Context) {
	c.mu.Lock()
	c.form = domain.AppointmentRequest{}
	c.mu.Unlock()

	c.gate.Reset()
	c.slots.Clear()
	c.refdata.LoadCities(ctx, "")
	c.refdata.LoadDoctors(ctx, "", "")
}

// Snapshot возвращает срез текущего состояния формы для отображения
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	form := c.form
	submitting := c.submitting
	c.mu.Unlock()

	var date string
	if !form.Date.IsZero() {
		date = form.Date.Format(domain.DateFormat)
	}

	return Snapshot{
		Form: FormValues{
			FullName: form.FullName,
			Email:    form.Email,
			Phone:    form.Phone,
			Disease:  form.Disease,
			State:    form.State,
			City:     form.City,
			Date:     date,
			Doctor:   form.Doctor,
			Reason:   form.Reason,
		},
		States:       c.refdata.States(),
		Cities:       c.refdata.Cities(),
		Diseases:     c.refdata.Diseases(),
		Doctors:      c.refdata.Doctors(),
		Verification: c.gate.State(),
		SlotView:     c.slots.Snapshot(),
		Submitting:   submitting,
	}
}

// Close отменяет все in-flight запросы контроллера
// Вызывается при удалении сессии; завершившиеся после Close запросы - no-op
func (c *Controller) Close() {
	c.refdata.Close()
	c.slots.Close()
}
