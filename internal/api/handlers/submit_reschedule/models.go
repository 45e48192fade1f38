package submit_reschedule

import (
	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
)

// SubmitResponse HTTP response model
type SubmitResponse struct {
	Message  string                              `json:"message"`
	Snapshot handlers.RescheduleSnapshotResponse `json:"snapshot"`
}

// ConflictResponse тело ответа 409: слот занят параллельной записью,
// актуальный набор слотов приложен для перевыбора
type ConflictResponse struct {
	Message        string                  `json:"message"`
	AvailableSlots []handlers.SlotResponse `json:"availableSlots"`
}
