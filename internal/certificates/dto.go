package certificates

import "realestate-backend/internal/shared/validate"

// Input is the typed body of create and update requests.
type Input struct {
	Title       *string `json:"title" create:"required,notblank" update:"omitnil,notblank"`
	Issuer      *string `json:"issuer"`
	IssueDate   *string `json:"issueDate"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status" create:"omitnil,oneof=active inactive" update:"omitnil,oneof=active inactive"`
}

func (in *Input) normalize() {
	validate.Trim(in.Title)
	validate.Trim(in.Issuer)
	validate.Trim(in.IssueDate)
	validate.Trim(in.Description)
	validate.Trim(in.ImageURL)
	validate.Lower(in.Status)
}
