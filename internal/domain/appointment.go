package domain

import (
	"time"

	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

// AppointmentRequest заявка на приём, собираемая формой записи
// Существует только в памяти сессии до успешной отправки в booking-сервис
type AppointmentRequest struct {
	FullName    string
	Email       string
	Phone       string
	Disease     string
	State       string
	City        string
	Date        time.Time
	Doctor      string
	DoctorEmail string
	Time        types.TimeString
	Reason      string
}

// HasSchedulingContext возвращает true, если выбраны врач и дата -
// условие, при котором имеет смысл запрашивать слоты
func (r *AppointmentRequest) HasSchedulingContext() bool {
	return r.DoctorEmail != "" && !r.Date.IsZero()
}

// Doctor краткая карточка врача из справочника
type Doctor struct {
	ID    string
	Name  string
	Email string
}

// Disease заболевание/специализация из справочника
type Disease struct {
	ID   string
	Name string
}
