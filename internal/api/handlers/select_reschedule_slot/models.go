package select_reschedule_slot

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	Time string `json:"time"` // HH:MM
}
