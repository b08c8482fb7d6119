package maps

import (
	"realestate-backend/internal/shared/validate"
)

// Input is the typed body of create and update requests.
type Input struct {
	Title       *string              `json:"title" create:"required,notblank" update:"omitnil,notblank"`
	Description *string              `json:"description"`
	Category    *string              `json:"category"`
	PdfURL      *string              `json:"pdfUrl"`
	Image       *string              `json:"image"`
	Tags        *validate.StringList `json:"tags"`
	Size        *string              `json:"size"`
	Status      *string              `json:"status" create:"omitnil,oneof=active inactive" update:"omitnil,oneof=active inactive"`
}

func (in *Input) normalize() {
	validate.Trim(in.Title)
	validate.Trim(in.Description)
	validate.Lower(in.Category)
	validate.Trim(in.PdfURL)
	validate.Trim(in.Image)
	validate.Trim(in.Size)
	validate.Lower(in.Status)
}

func (in *Input) applyDefaults() {
	validate.Default(&in.Category, DefaultCategory)
	validate.Default(&in.Status, StatusActive)
}

func (in *Input) tags() Tags {
	if in.Tags == nil {
		return Tags{}
	}
	return Tags(validate.Tags(*in.Tags))
}
