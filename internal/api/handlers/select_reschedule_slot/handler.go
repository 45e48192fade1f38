package select_reschedule_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

const (
	msgSessionNotFound = "reschedule session not found"
	msgInvalidBody     = "invalid request body"
	msgNotActive       = "Reschedule session is not active."
	msgNoDateSelected  = "Please pick a date first."
	msgSlotsNotLoaded  = "slots are not loaded yet"
	msgUnknownSlot     = "selected time is not in the available set"
	msgSlotBooked      = "selected time slot is already booked"
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

// Handle POST /api/v1/reschedule/{token}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	controller, ok := h.sessions.GetReschedule(token)
	if !ok {
		h.logger.Warn("POST /reschedule/{token}/slot - Session not found")
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule/{token}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := controller.SelectSlot(types.TimeString(req.Time)); err != nil {
		switch {
		case errors.Is(err, reschedule.ErrNotActive):
			handlers.RespondError(w, http.StatusConflict, msgNotActive)

		case errors.Is(err, reschedule.ErrNoDateSelected):
			handlers.RespondBadRequest(w, msgNoDateSelected)

		case errors.Is(err, slotview.ErrNotPopulated):
			handlers.RespondBadRequest(w, msgSlotsNotLoaded)

		case errors.Is(err, slotview.ErrUnknownSlot):
			h.logger.Warn("POST /reschedule/{token}/slot - Unknown slot: time=%q", req.Time)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, slotview.ErrSlotBooked):
			h.logger.Warn("POST /reschedule/{token}/slot - Slot already booked: time=%q", req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		default:
			h.logger.Error("POST /reschedule/{token}/slot - Failed to select slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule/{token}/slot - Slot selected: time=%s", req.Time)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromRescheduleSnapshot(controller.Snapshot()))
}
