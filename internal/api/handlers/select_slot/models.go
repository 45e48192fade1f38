package select_slot

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	Time string `json:"time"` // "09:00"
}
