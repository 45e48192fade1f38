package intake

import (
	"context"
	"time"

	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	"github.com/m04kA/HSC-AppointmentService/internal/integrations/directory"
)

// BookingServiceClient интерфейс клиента booking-сервиса
type BookingServiceClient interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
	GetSlots(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error)
	CreateAppointment(ctx context.Context, payload *bookingservice.AppointmentPayload) error
}

// DirectoryClient интерфейс клиента справочного сервиса
type DirectoryClient interface {
	ListStates(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, state string) ([]string, error)
	ListDiseases(ctx context.Context) ([]directory.DiseaseDTO, error)
	FindDoctors(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error)
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
