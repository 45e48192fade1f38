package submit_reschedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
)

const (
	msgSessionNotFound = "reschedule session not found"
	msgNotActive       = "Reschedule session is not active."
	msgNoDateSelected  = "Please pick a date first."
	msgNoSlotSelected  = "Please select a time slot."
	msgSubmitInFlight  = "Submission already in progress."
	msgTokenExpired    = "This reschedule link is invalid or has expired."
	msgSubmitFailed    = "Failed to reschedule. Please try again."
	msgRescheduled     = "Appointment rescheduled successfully!"
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

// Handle POST /api/v1/reschedule/{token}
//
// 409 означает, что выбранный слот заняла параллельная запись: тело ответа
// несёт свежий набор слотов, сессия остаётся активной для перевыбора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	controller, ok := h.sessions.GetReschedule(token)
	if !ok {
		h.logger.Warn("POST /reschedule/{token} - Session not found")
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	if err := controller.Submit(r.Context()); err != nil {
		switch {
		case errors.Is(err, reschedule.ErrSlotConflict):
			h.logger.Warn("POST /reschedule/{token} - Slot conflict: %v", err)
			view := handlers.FromRescheduleSnapshot(controller.Snapshot()).SlotView
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Message:        view.Message,
				AvailableSlots: view.Slots,
			})

		case errors.Is(err, reschedule.ErrTokenExpired):
			h.logger.Warn("POST /reschedule/{token} - Token expired")
			h.sessions.DropReschedule(token)
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, reschedule.ErrNotActive):
			handlers.RespondError(w, http.StatusConflict, msgNotActive)

		case errors.Is(err, reschedule.ErrNoDateSelected):
			handlers.RespondBadRequest(w, msgNoDateSelected)

		case errors.Is(err, reschedule.ErrNoSlotSelected):
			handlers.RespondBadRequest(w, msgNoSlotSelected)

		case errors.Is(err, reschedule.ErrSubmitInFlight):
			handlers.RespondError(w, http.StatusConflict, msgSubmitInFlight)

		case errors.Is(err, reschedule.ErrSubmitFailed):
			h.logger.Error("POST /reschedule/{token} - Submit failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgSubmitFailed)

		default:
			h.logger.Error("POST /reschedule/{token} - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule/{token} - Appointment rescheduled")
	handlers.RespondJSON(w, http.StatusOK, SubmitResponse{
		Message:  msgRescheduled,
		Snapshot: handlers.FromRescheduleSnapshot(controller.Snapshot()),
	})
}
