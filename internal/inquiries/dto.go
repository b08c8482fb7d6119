package inquiries

import "realestate-backend/internal/shared/validate"

// Input is the public inquiry form. Status is not accepted here: every new
// inquiry starts as "new".
type Input struct {
	Name          *string `json:"name" create:"required,notblank"`
	Phone         *string `json:"phone" create:"required,notblank"`
	Message       *string `json:"message" create:"required,notblank"`
	Email         *string `json:"email" create:"omitempty,email"`
	PropertyID    *string `json:"propertyId"`
	PropertyTitle *string `json:"propertyTitle"`
	Source        *string `json:"source" create:"omitnil,oneof=inquiry quick_inquiry schedule_viewing"`
}

func (in *Input) normalize() {
	validate.Trim(in.Name)
	validate.Trim(in.Phone)
	validate.Trim(in.Message)
	validate.Lower(in.Email)
	validate.Trim(in.PropertyID)
	validate.Trim(in.PropertyTitle)
	validate.Lower(in.Source)
	validate.Default(&in.Source, SourceInquiry)
}

// StatusInput is the body of the status change route.
type StatusInput struct {
	Status *string `json:"status" update:"required,oneof=new contacted closed"`
}
