package verify_otp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/verification"
)

const (
	msgSessionNotFound = "session not found or expired"
	msgInvalidBody     = "invalid request body"
	msgCodeRequired    = "Please enter the OTP."
	msgNoCodeRequested = "Request an OTP before verifying."
	msgCodeMismatch    = "Invalid OTP. Try again."
	msgVerifyFailed    = "OTP verification failed."
	msgVerified        = "Email verified successfully!"
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

// Handle POST /api/v1/intake/otp/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	controller, ok := h.sessions.GetIntake(sessionID)
	if !ok {
		h.logger.Warn("POST /intake/otp/verify - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req VerifyOtpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /intake/otp/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Пробелы внутри кода игнорируются
	code := strings.ReplaceAll(req.Otp, " ", "")

	if err := controller.VerifyCode(r.Context(), code); err != nil {
		switch {
		case errors.Is(err, verification.ErrCodeRequired):
			handlers.RespondBadRequest(w, msgCodeRequired)

		case errors.Is(err, verification.ErrNoCodeRequested):
			h.logger.Warn("POST /intake/otp/verify - No code requested: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgNoCodeRequested)

		case errors.Is(err, verification.ErrCodeMismatch):
			h.logger.Info("POST /intake/otp/verify - Code mismatch: session_id=%s", sessionID)
			handlers.RespondJSON(w, http.StatusOK, VerifyOtpResponse{Verified: false, Message: msgCodeMismatch})

		case errors.Is(err, verification.ErrVerifyFailed):
			h.logger.Error("POST /intake/otp/verify - Verify call failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgVerifyFailed)

		default:
			h.logger.Error("POST /intake/otp/verify - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /intake/otp/verify - Email verified: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, VerifyOtpResponse{Verified: true, Message: msgVerified})
}
