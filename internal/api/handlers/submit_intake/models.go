package submit_intake

import (
	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
)

// SubmitResponse HTTP response model
type SubmitResponse struct {
	Message  string                          `json:"message"`
	Snapshot handlers.IntakeSnapshotResponse `json:"snapshot"`
}
