package update_intake_field

import (
	"errors"
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
)

const (
	msgSessionNotFound    = "session not found or expired"
	msgInvalidRequestBody = "invalid request body"
	msgUnknownField       = "unknown form field"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgUnknownDoctor      = "doctor is not available for the selected city and disease"
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

// Handle PUT /api/v1/intake/fields
// Устанавливает значение поля и применяет каскад: в ответе - полный срез
// формы с уже очищенными нижними выборами и обновлёнными справочниками
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("PUT /intake/fields - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req UpdateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /intake/fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := controller.SetField(r.Context(), intake.Field(req.Field), req.Value)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrUnknownField):
			h.logger.Warn("PUT /intake/fields - Unknown field: field=%q", req.Field)
			handlers.RespondBadRequest(w, msgUnknownField)

		case errors.Is(err, intake.ErrInvalidDate):
			h.logger.Warn("PUT /intake/fields - Invalid date: value=%q", req.Value)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, intake.ErrUnknownDoctor):
			h.logger.Warn("PUT /intake/fields - Unknown doctor: value=%q", req.Value)
			handlers.RespondBadRequest(w, msgUnknownDoctor)

		default:
			h.logger.Error("PUT /intake/fields - Failed to set field %q: %v", req.Field, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromIntakeSnapshot(controller.Snapshot()))
}
