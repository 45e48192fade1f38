package submit_intake

import (
	"errors"
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
)

const (
	msgSessionNotFound  = "session not found or expired"
	msgEmailNotVerified = "Please verify your email before submitting."
	msgNoSlotSelected   = "Please select a time slot."
	msgSubmitInFlight   = "Submission already in progress."
	msgSubmitFailed     = "Appointment failed. Please try again."
	msgSubmitted        = "Appointment booked successfully!"
)

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

// Handle POST /api/v1/intake/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("POST /intake/submit - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	if err := controller.Submit(r.Context()); err != nil {
		switch {
		case errors.Is(err, intake.ErrEmailNotVerified):
			h.logger.Warn("POST /intake/submit - Email not verified: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgEmailNotVerified)

		case errors.Is(err, intake.ErrNoSlotSelected):
			h.logger.Warn("POST /intake/submit - No slot selected: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgNoSlotSelected)

		case errors.Is(err, intake.ErrValidation):
			h.logger.Warn("POST /intake/submit - Validation failed: session_id=%s, err=%v", sessionID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, intake.ErrSubmitInFlight):
			h.logger.Warn("POST /intake/submit - Submit already in flight: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSubmitInFlight)

		case errors.Is(err, intake.ErrSubmitFailed):
			h.logger.Error("POST /intake/submit - Upstream submit failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgSubmitFailed)

		default:
			h.logger.Error("POST /intake/submit - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /intake/submit - Appointment created: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, SubmitResponse{
		Message:  msgSubmitted,
		Snapshot: handlers.FromIntakeSnapshot(controller.Snapshot()),
	})
}
