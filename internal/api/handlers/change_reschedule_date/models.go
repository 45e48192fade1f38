package change_reschedule_date

// ChangeDateRequest HTTP request model
type ChangeDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}
