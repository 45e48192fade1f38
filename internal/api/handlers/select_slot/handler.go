package select_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

const (
	msgSessionNotFound    = "session not found or expired"
	msgInvalidRequestBody = "invalid request body"
	msgSlotsNotLoaded     = "slots are not loaded yet"
	msgUnknownSlot        = "selected time is not in the available set"
	msgSlotBooked         = "selected time slot is already booked"
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

// Handle POST /api/v1/intake/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("POST /intake/slot - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /intake/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := controller.SelectSlot(types.TimeString(req.Time)); err != nil {
		switch {
		case errors.Is(err, slotview.ErrNotPopulated):
			h.logger.Warn("POST /intake/slot - Slots not loaded: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgSlotsNotLoaded)

		case errors.Is(err, slotview.ErrUnknownSlot):
			h.logger.Warn("POST /intake/slot - Unknown slot: time=%q", req.Time)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, slotview.ErrSlotBooked):
			h.logger.Warn("POST /intake/slot - Slot already booked: time=%q", req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		default:
			h.logger.Error("POST /intake/slot - Failed to select slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /intake/slot - Slot selected: session_id=%s, time=%s", sessionID, req.Time)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromIntakeSnapshot(controller.Snapshot()))
}
