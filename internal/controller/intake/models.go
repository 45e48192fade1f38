package intake

import (
	"github.com/m04kA/HSC-AppointmentService/internal/controller/slotview"
	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

// Field поле формы записи на приём
type Field string

const (
	FieldFullName Field = "fullName"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldDisease  Field = "disease"
	FieldState    Field = "state"
	FieldCity     Field = "city"
	FieldDate     Field = "date"
	FieldDoctor   Field = "doctor"
	FieldReason   Field = "reason"
)

// FormValues текущие значения полей формы
type FormValues struct {
	FullName string
	Email    string
	Phone    string
	Disease  string
	State    string
	City     string
	Date     string // "2006-01-02", пустая строка = не выбрана
	Doctor   string
	Reason   string
}

// Snapshot срез состояния формы записи для отображения
type Snapshot struct {
	Form         FormValues
	States       []string
	Cities       []string
	Diseases     []domain.Disease
	Doctors      []domain.Doctor
	Verification domain.VerificationState
	SlotView     slotview.Snapshot
	Submitting   bool
}
