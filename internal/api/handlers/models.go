package handlers

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
)

// MessageResponse ответ, состоящий из одного сообщения
type MessageResponse struct {
	Message string `json:"message"`
}

// SlotResponse модель слота в HTTP-ответах
type SlotResponse struct {
	Start  string `json:"start"`
	Booked bool   `json:"booked"`
}

// SlotViewResponse состояние панели слотов в HTTP-ответах
type SlotViewResponse struct {
	Status   string         `json:"status"` // none | loading | error | populated
	Message  string         `json:"message,omitempty"`
	Slots    []SlotResponse `json:"slots"`
	Selected string         `json:"selected,omitempty"`
}

// DoctorResponse карточка врача в HTTP-ответах
type DoctorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DiseaseResponse заболевание в HTTP-ответах
type DiseaseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IntakeFormResponse значения полей формы в HTTP-ответах
type IntakeFormResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Disease  string `json:"disease"`
	State    string `json:"state"`
	City     string `json:"city"`
	Date     string `json:"date"`
	Doctor   string `json:"doctor"`
	Reason   string `json:"reason"`
}

// IntakeSnapshotResponse полный срез сессии формы записи
type IntakeSnapshotResponse struct {
	Form          IntakeFormResponse `json:"form"`
	States        []string           `json:"states"`
	Cities        []string           `json:"cities"`
	Diseases      []DiseaseResponse  `json:"diseases"`
	Doctors       []DoctorResponse   `json:"doctors"`
	OtpSent       bool               `json:"otpSent"`
	EmailVerified bool               `json:"emailVerified"`
	SlotView      SlotViewResponse   `json:"slotView"`
	Submitting    bool               `json:"submitting"`
}

// RescheduleSnapshotResponse срез сессии переноса приёма
type RescheduleSnapshotResponse struct {
	Status      string           `json:"status"`
	Doctor      string           `json:"doctor"`
	DoctorEmail string           `json:"doctorEmail"`
	Date        string           `json:"date,omitempty"`
	SlotView    SlotViewResponse `json:"slotView"`
	Submitting  bool             `json:"submitting"`
}

// FromSlotView конвертирует срез панели слотов в HTTP-модель
func FromSlotView(s slotview.Snapshot) SlotViewResponse {
	slots := make([]SlotResponse, 0, len(s.Slots))
	for _, slot := range s.Slots {
		slots = append(slots, SlotResponse{
			Start:  slot.Start.String(),
			Booked: slot.Booked,
		})
	}
	return SlotViewResponse{
		Status:   string(s.Status),
		Message:  s.Message,
		Slots:    slots,
		Selected: s.Selected.String(),
	}
}

// FromIntakeSnapshot конвертирует срез формы записи в HTTP-модель
func FromIntakeSnapshot(s intake.Snapshot) IntakeSnapshotResponse {
	diseases := make([]DiseaseResponse, 0, len(s.Diseases))
	for _, d := range s.Diseases {
		diseases = append(diseases, DiseaseResponse{ID: d.ID, Name: d.Name})
	}
	doctors := make([]DoctorResponse, 0, len(s.Doctors))
	for _, d := range s.Doctors {
		doctors = append(doctors, DoctorResponse{ID: d.ID, Name: d.Name, Email: d.Email})
	}

	return IntakeSnapshotResponse{
		Form: IntakeFormResponse{
			FullName: s.Form.FullName,
			Email:    s.Form.Email,
			Phone:    s.Form.Phone,
			Disease:  s.Form.Disease,
			State:    s.Form.State,
			City:     s.Form.City,
			Date:     s.Form.Date,
			Doctor:   s.Form.Doctor,
			Reason:   s.Form.Reason,
		},
		States:        s.States,
		Cities:        s.Cities,
		Diseases:      diseases,
		Doctors:       doctors,
		OtpSent:       s.Verification.OtpSent(),
		EmailVerified: s.Verification.IsVerified(),
		SlotView:      FromSlotView(s.SlotView),
		Submitting:    s.Submitting,
	}
}

// FromRescheduleSnapshot конвертирует срез сессии переноса в HTTP-модель
func FromRescheduleSnapshot(s reschedule.Snapshot) RescheduleSnapshotResponse {
	return RescheduleSnapshotResponse{
		Status:      string(s.Status),
		Doctor:      s.Appointment.Doctor,
		DoctorEmail: s.Appointment.DoctorEmail,
		Date:        s.Date,
		SlotView:    FromSlotView(s.SlotView),
		Submitting:  s.Submitting,
	}
}
