package request_otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/verification"
)

const (
	msgSessionNotFound = "session not found or expired"
	msgEmailRequired   = "Please enter an email before sending OTP."
	msgSendFailed      = "Failed to send OTP"
	msgOtpSent         = "OTP sent to email"
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

// Handle POST /api/v1/intake/otp/request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("POST /intake/otp/request - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	if err := controller.RequestCode(r.Context()); err != nil {
		switch {
		case errors.Is(err, verification.ErrEmailRequired):
			h.logger.Warn("POST /intake/otp/request - Email missing: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgEmailRequired)

		case errors.Is(err, verification.ErrSendFailed):
			h.logger.Error("POST /intake/otp/request - Failed to send code: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)

		default:
			h.logger.Error("POST /intake/otp/request - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /intake/otp/request - Code sent: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgOtpSent})
}
