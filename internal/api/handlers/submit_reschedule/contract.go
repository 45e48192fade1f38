package submit_reschedule

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
)

// SessionRegistry интерфейс реестра сессий переноса
type SessionRegistry interface {
	GetReschedule(token string) (*reschedule.Controller, bool)
	DropReschedule(token string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
