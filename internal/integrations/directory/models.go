package directory

// DiseaseDTO заболевание/специализация из справочника
type DiseaseDTO struct {
	ID      string `json:"_id"`
	Disease string `json:"disease"`
}

// DoctorDTO карточка врача из справочника
type DoctorDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// doctorsResponse ответ поиска врачей: сервис может вернуть либо
// {"doctors": [...]}, либо голый массив - оба варианта поддерживаются
type doctorsResponse struct {
	Doctors []DoctorDTO `json:"doctors"`
}
