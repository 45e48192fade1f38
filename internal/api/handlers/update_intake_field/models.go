package update_intake_field

// UpdateFieldRequest HTTP request model
type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
