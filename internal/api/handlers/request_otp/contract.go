package request_otp

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
)

// SessionRegistry интерфейс реестра сессий
type SessionRegistry interface {
	GetIntake(id string) (*intake.Controller, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
