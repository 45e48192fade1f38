package reference

import (
	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
)

// StatesResponse HTTP response model
type StatesResponse struct {
	States []string `json:"states"`
}

// CitiesResponse HTTP response model
type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// DiseasesResponse HTTP response model
type DiseasesResponse struct {
	Diseases []handlers.DiseaseResponse `json:"diseases"`
}

// DoctorsResponse HTTP response model
type DoctorsResponse struct {
	Doctors []handlers.DoctorResponse `json:"doctors"`
}
