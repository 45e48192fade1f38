package resolve_reschedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

const (
	msgTokenRequired = "reschedule token is required"
	msgTokenExpired  = "This reschedule link is invalid or has expired."
	msgResolveFailed = "Failed to load appointment. Please try again."
)

type Handler struct {
	sessions SessionRegistry
	factory  ControllerFactory
	logger   Logger
}

func NewHandler(sessions SessionRegistry, factory ControllerFactory, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		factory:  factory,
		logger:   logger,
	}
}

// Handle GET /api/v1/reschedule/{token}
//
// Токен сам по себе является авторизацией: заголовок сессии не требуется.
// Повторный GET по уже открытой сессии возвращает её текущий срез
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgTokenRequired)
		return
	}

	if controller, ok := h.sessions.GetReschedule(token); ok {
		if controller.Status() == domain.RescheduleExpired {
			h.sessions.DropReschedule(token)
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, handlers.FromRescheduleSnapshot(controller.Snapshot()))
		return
	}

	controller := h.factory(token)
	if err := controller.Resolve(r.Context()); err != nil {
		switch {
		case errors.Is(err, reschedule.ErrTokenExpired):
			h.logger.Warn("GET /reschedule/{token} - Token invalid or expired")
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, reschedule.ErrResolveFailed):
			h.logger.Error("GET /reschedule/{token} - Resolve failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgResolveFailed)

		default:
			h.logger.Error("GET /reschedule/{token} - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		controller.Close()
		return
	}

	h.sessions.PutReschedule(token, controller)
	h.logger.Info("GET /reschedule/{token} - Reschedule session opened")
	handlers.RespondJSON(w, http.StatusOK, handlers.FromRescheduleSnapshot(controller.Snapshot()))
}
