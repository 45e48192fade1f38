package reference

import (
	"net/http"

	"github.com/m04kA/HSC-AppointmentService/internal/api/handlers"
)

// Handler отдаёт справочники без привязки к сессии
//
// Справочные списки - вспомогательные данные: при сбое справочного сервиса
// отдаём пустой список с кодом 200, а не ошибку. Деградация уже
// залогирована, форма остаётся рабочей
type Handler struct {
	directory DirectoryClient
	logger    Logger
}

func NewHandler(directory DirectoryClient, logger Logger) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
	}
}

// HandleStates GET /api/v1/reference/states
func (h *Handler) HandleStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.directory.ListStates(r.Context())
	if err != nil {
		h.logger.Warn("GET /reference/states - Directory unavailable: %v", err)
		states = nil
	}
	if states == nil {
		states = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, StatesResponse{States: states})
}

// HandleCities GET /api/v1/reference/cities?state=...
func (h *Handler) HandleCities(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		handlers.RespondJSON(w, http.StatusOK, CitiesResponse{Cities: []string{}})
		return
	}

	cities, err := h.directory.ListCities(r.Context(), state)
	if err != nil {
		h.logger.Warn("GET /reference/cities - Directory unavailable: %v", err)
		cities = nil
	}
	if cities == nil {
		cities = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, CitiesResponse{Cities: cities})
}

// HandleDiseases GET /api/v1/reference/diseases
func (h *Handler) HandleDiseases(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.directory.ListDiseases(r.Context())
	if err != nil {
		h.logger.Warn("GET /reference/diseases - Directory unavailable: %v", err)
		dtos = nil
	}

	diseases := make([]handlers.DiseaseResponse, 0, len(dtos))
	for _, d := range dtos {
		diseases = append(diseases, handlers.DiseaseResponse{ID: d.ID, Name: d.Disease})
	}
	handlers.RespondJSON(w, http.StatusOK, DiseasesResponse{Diseases: diseases})
}

// HandleDoctors GET /api/v1/reference/doctors?city=...&specialization=...
func (h *Handler) HandleDoctors(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	specialization := r.URL.Query().Get("specialization")
	if city == "" || specialization == "" {
		handlers.RespondJSON(w, http.StatusOK, DoctorsResponse{Doctors: []handlers.DoctorResponse{}})
		return
	}

	dtos, err := h.directory.FindDoctors(r.Context(), city, specialization)
	if err != nil {
		h.logger.Warn("GET /reference/doctors - Directory unavailable: %v", err)
		dtos = nil
	}

	doctors := make([]handlers.DoctorResponse, 0, len(dtos))
	for _, d := range dtos {
		doctors = append(doctors, handlers.DoctorResponse{ID: d.ID, Name: d.Name, Email: d.Email})
	}
	handlers.RespondJSON(w, http.StatusOK, DoctorsResponse{Doctors: doctors})
}
