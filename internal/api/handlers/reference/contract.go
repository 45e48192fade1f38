package reference

import (
	"context"

	"github.com/m04kA/HSC-AppointmentService/internal/integrations/directory"
)

// DirectoryClient интерфейс справочного сервиса
type DirectoryClient interface {
	ListStates(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, state string) ([]string, error)
	ListDiseases(ctx context.Context) ([]directory.DiseaseDTO, error)
	FindDoctors(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
