package change_reschedule_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
)

const (
	msgSessionNotFound = "reschedule session not found"
	msgInvalidBody     = "invalid request body"
	msgInvalidDate     = "date must be in YYYY-MM-DD format"
	msgDateInPast      = "Date cannot be in the past."
	msgTokenExpired    = "This reschedule link is invalid or has expired."
	msgNotActive       = "Reschedule session is not active."
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

// Handle PUT /api/v1/reschedule/{token}/date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	controller, ok := h.sessions.GetReschedule(token)
	if !ok {
		h.logger.Warn("PUT /reschedule/{token}/date - Session not found")
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req ChangeDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reschedule/{token}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := controller.ChangeDate(r.Context(), req.Date); err != nil {
		switch {
		case errors.Is(err, reschedule.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reschedule.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, reschedule.ErrTokenExpired):
			h.logger.Warn("PUT /reschedule/{token}/date - Token expired")
			h.sessions.DropReschedule(token)
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, reschedule.ErrNotActive):
			handlers.RespondError(w, http.StatusConflict, msgNotActive)

		default:
			h.logger.Error("PUT /reschedule/{token}/date - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromRescheduleSnapshot(controller.Snapshot()))
}
