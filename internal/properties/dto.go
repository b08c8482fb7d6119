package properties

import (
	"realestate-backend/internal/shared/validate"
)

// Input is the typed body of create and update requests. Nil fields were not
// supplied.
type Input struct {
	Title        *string              `json:"title" create:"required,notblank" update:"omitnil,notblank"`
	Location     *string              `json:"location" create:"required,notblank" update:"omitnil,notblank"`
	City         *string              `json:"city" create:"required,notblank" update:"omitnil,notblank"`
	Type         *string              `json:"type" create:"required,notblank" update:"omitnil,notblank"`
	Description  *string              `json:"description" create:"required,notblank" update:"omitnil,notblank"`
	Purpose      *string              `json:"purpose" create:"omitnil,oneof=sale rent" update:"omitnil,oneof=sale rent"`
	Status       *string              `json:"status" create:"omitnil,oneof=active sold rented inactive" update:"omitnil,oneof=active sold rented inactive"`
	Price        *float64             `json:"price" create:"required,gte=0" update:"omitnil,gte=0"`
	Area         *float64             `json:"area" create:"omitnil,gte=0" update:"omitnil,gte=0"`
	AreaUnit     *string              `json:"areaUnit"`
	Bedrooms     *int                 `json:"bedrooms" create:"omitnil,gte=0" update:"omitnil,gte=0"`
	Bathrooms    *int                 `json:"bathrooms" create:"omitnil,gte=0" update:"omitnil,gte=0"`
	ContactPhone *string              `json:"contactPhone"`
	Images       *validate.StringList `json:"images"`
	KeepImages   *validate.StringList `json:"keepImages"`
}

func (in *Input) normalize() {
	validate.Trim(in.Title)
	validate.Trim(in.Location)
	validate.Lower(in.City)
	validate.Lower(in.Type)
	validate.Trim(in.Description)
	validate.Lower(in.Purpose)
	validate.Lower(in.Status)
	validate.Trim(in.AreaUnit)
	validate.Trim(in.ContactPhone)
}

func (in *Input) applyDefaults() {
	validate.Default(&in.Purpose, PurposeSale)
	validate.Default(&in.Status, StatusActive)
	validate.Default(&in.AreaUnit, DefaultAreaUnit)
}

// retained returns the image URLs an update keeps, or nil when the request
// did not mention images at all.
func (in *Input) retained() []string {
	switch {
	case in.KeepImages != nil:
		return *in.KeepImages
	case in.Images != nil:
		return *in.Images
	default:
		return nil
	}
}
