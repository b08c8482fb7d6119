package subscribers

// Input is the public subscribe form.
type Input struct {
	Email *string `json:"email" create:"required,email"`
}
