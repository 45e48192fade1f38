package domain

import "github.com/m04kA/HSC-AppointmentService/pkg/types"

// Slot временной слот приёма врача на конкретную дату
// Набор слотов для пары (врач, дата) принадлежит booking-сервису:
// клиент никогда не меняет признак занятости локально
type Slot struct {
	Start  types.TimeString
	Booked bool
}

// IsBookable возвращает true, если слот можно выбрать
func (s *Slot) IsBookable() bool {
	return !s.Booked
}

// FindSlot ищет слот с указанным временем начала в наборе
// Возвращает nil, если слот не найден
func FindSlot(slots []Slot, start types.TimeString) *Slot {
	for i := range slots {
		if slots[i].Start == start {
			return &slots[i]
		}
	}
	return nil
}
