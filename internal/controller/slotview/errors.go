package slotview

import "errors"

var (
	// ErrNotPopulated возвращается при попытке выбрать слот до загрузки набора
	ErrNotPopulated = errors.New("slotview: slots are not loaded")

	// ErrUnknownSlot возвращается, когда выбранного времени нет в наборе
	ErrUnknownSlot = errors.New("slotview: slot is not in the available set")

	// ErrSlotBooked возвращается при попытке выбрать занятый слот
	ErrSlotBooked = errors.New("slotview: slot is already booked")
)
