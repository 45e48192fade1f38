package reschedule

import (
	"context"
	"time"

	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
)

// BookingServiceClient интерфейс клиента booking-сервиса
type BookingServiceClient interface {
	ResolveReschedule(ctx context.Context, token string, date *string) (*bookingservice.RescheduleResponse, error)
	SubmitReschedule(ctx context.Context, token, date, timeStr string) error
	GetSlots(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
