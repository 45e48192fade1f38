package start_intake

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
)

// SessionRegistry интерфейс реестра сессий
type SessionRegistry interface {
	CreateIntake(c *intake.Controller) string
}

// ControllerFactory создает новый контроллер формы записи
type ControllerFactory func() *intake.Controller

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
