package reschedule

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

// MsgLoadFailed сообщение при сбое загрузки слотов на дату-кандидата
const MsgLoadFailed = "Failed to load slots"

// Snapshot срез состояния сессии переноса для отображения
type Snapshot struct {
	Status      domain.RescheduleStatus
	Appointment domain.AppointmentSummary
	Date        string // дата-кандидат "2006-01-02", пустая = не выбрана
	SlotView    slotview.Snapshot
	Submitting  bool
}
