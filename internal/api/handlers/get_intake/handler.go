package get_intake

import (
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
)

const msgSessionNotFound = "session not found or expired"

type Handler struct {
	sessions SessionRegistry
	logger   Logger
}

func NewHandler(sessions SessionRegistry, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle GET /api/v1/intake
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("GET /intake - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromIntakeSnapshot(controller.Snapshot()))
}
