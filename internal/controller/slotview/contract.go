package slotview

import (
	"context"

	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
)

// BookingServiceClient интерфейс клиента booking-сервиса
type BookingServiceClient interface {
	GetSlots(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
