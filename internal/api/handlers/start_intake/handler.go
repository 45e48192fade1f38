package start_intake

import (
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	sessions      SessionRegistry
	newController ControllerFactory
	logger        Logger
}

func NewHandler(sessions SessionRegistry, newController ControllerFactory, logger Logger) *Handler {
	return &Handler{
		sessions:      sessions,
		newController: newController,
		logger:        logger,
	}
}

// Handle POST /api/v1/intake
// Создает сессию формы записи и сразу загружает статические справочники
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	controller := h.newController()
	states, diseases := controller.Bootstrap(r.Context())

	sessionID := h.sessions.CreateIntake(controller)

	diseaseList := make([]handlers.DiseaseResponse, 0, len(diseases))
	for _, d := range diseases {
		diseaseList = append(diseaseList, handlers.DiseaseResponse{ID: d.ID, Name: d.Name})
	}

	h.logger.Info("POST /intake - Session created: session_id=%s, states=%d, diseases=%d",
		sessionID, len(states), len(diseaseList))
	handlers.RespondJSON(w, http.StatusCreated, StartIntakeResponse{
		SessionID: sessionID,
		States:    states,
		Diseases:  diseaseList,
	})
}
