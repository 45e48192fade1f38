package start_intake

import "github.com/m04kA/HSC-AppointmentService/internal/api/handlers"

// StartIntakeResponse ответ на создание сессии формы записи
type StartIntakeResponse struct {
	SessionID string                      `json:"sessionId"`
	States    []string                    `json:"states"`
	Diseases  []handlers.DiseaseResponse  `json:"diseases"`
}
