package slotview

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

// Status наблюдаемое состояние панели слотов
type Status string

const (
	// StatusNone панель не отображается: врач или дата ещё не выбраны
	StatusNone Status = "none"
	// StatusLoading запрос слотов выполняется
	StatusLoading Status = "loading"
	// StatusError запрос слотов завершился ошибкой
	StatusError Status = "error"
	// StatusPopulated набор слотов загружен (возможно, пустой)
	StatusPopulated Status = "populated"
)

// MsgFetchFailed сообщение об ошибке загрузки слотов
const MsgFetchFailed = "Failed to fetch slots"

// MsgNoSlots сообщение при пустом наборе слотов
const MsgNoSlots = "No slots available for selected date."

// Snapshot срез состояния панели слотов для отображения
type Snapshot struct {
	Status   Status
	Message  string
	Slots    []domain.Slot
	Selected types.TimeString
}

// View панель доступных слотов для пары (врач, дата)
//
// Набор слотов принадлежит booking-сервису и никогда не мутируется локально:
// при любом изменении врача или даты выполняется повторная загрузка, а
// текущий выбор сбрасывается. Загрузка защищена номером поколения: ответ
// на запрос для уже смененной пары (врач, дата) отбрасывается
type View struct {
	client BookingServiceClient
	log    Logger

	mu       sync.Mutex
	status   Status
	message  string
	slots    []domain.Slot
	selected types.TimeString
	gen      uint64
	cancel   context.CancelFunc
}

// NewView создает новую панель слотов в состоянии "не отображается"
func NewView(client BookingServiceClient, log Logger) *View {
	return &View{
		client: client,
		log:    log,
		status: StatusNone,
	}
}

// Load загружает набор слотов для пары (врач, дата)
// Вызывается только когда оба значения непустые - иначе панель очищается.
// Любой предыдущий выбор слота сбрасывается сразу: он относился к другой паре
func (v *View) Load(ctx context.Context, doctorEmail, date string) {
	if doctorEmail == "" || date == "" {
		v.Clear()
		return
	}

	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	gen := v.gen
	v.status = StatusLoading
	v.message = ""
	v.selected = ""

	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()

	resp, err := v.client.GetSlots(fetchCtx, doctorEmail, date)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		// Врач или дата успели смениться - ответ устарел
		v.log.Info("SlotView: discarding stale slots response for doctor=%s date=%s", doctorEmail, date)
		return
	}
	v.cancel = nil

	if err != nil {
		v.log.Warn("SlotView: failed to fetch slots for doctor=%s date=%s: %v", doctorEmail, date, err)
		v.status = StatusError
		v.message = MsgFetchFailed
		v.slots = nil
		return
	}

	v.status = StatusPopulated
	v.message = resp.Message
	v.slots = convertSlots(resp.AvailableSlots)
	if len(v.slots) == 0 && v.message == "" {
		v.message = MsgNoSlots
	}
}

// Select выбирает свободный слот по времени начала
// Занятый или отсутствующий в наборе слот выбрать нельзя
func (v *View) Select(start types.TimeString) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.status != StatusPopulated {
		return ErrNotPopulated
	}

	slot := domain.FindSlot(v.slots, start)
	if slot == nil {
		return ErrUnknownSlot
	}
	if !slot.IsBookable() {
		return ErrSlotBooked
	}

	v.selected = start
	return nil
}

// Selected возвращает выбранный слот ("" если выбора нет)
func (v *View) Selected() types.TimeString {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Replace заменяет набор слотов данными, пришедшими извне
// (resolve токена переноса или payload конфликта 409) и сбрасывает выбор
func (v *View) Replace(slots []bookingservice.SlotDTO, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Внешняя замена инвалидирует любой in-flight запрос
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++

	v.status = StatusPopulated
	v.slots = convertSlots(slots)
	v.selected = ""
	v.message = message
	if len(v.slots) == 0 && v.message == "" {
		v.message = MsgNoSlots
	}
}

// Clear возвращает панель в состояние "не отображается"
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++

	v.status = StatusNone
	v.message = ""
	v.slots = nil
	v.selected = ""
}

// Snapshot возвращает срез текущего состояния панели
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Snapshot{
		Status:   v.status,
		Message:  v.message,
		Slots:    append([]domain.Slot(nil), v.slots...),
		Selected: v.selected,
	}
}

// Close отменяет in-flight запрос панели
func (v *View) Close() {
	v.Clear()
}

func convertSlots(dtos []bookingservice.SlotDTO) []domain.Slot {
	slots := make([]domain.Slot, 0, len(dtos))
	for _, s := range dtos {
		slots = append(slots, domain.Slot{
			Start:  types.TimeString(s.Start),
			Booked: s.Booked,
		})
	}
	// Сервис не гарантирует порядок слотов - сортируем по времени начала
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.IsBefore(slots[j].Start)
	})
	return slots
}
