package properties

import (
	"time"

	"realestate-backend/internal/ingest"
)

const (
	PurposeSale = "sale"
	PurposeRent = "rent"

	StatusActive   = "active"
	StatusSold     = "sold"
	StatusRented   = "rented"
	StatusInactive = "inactive"

	DefaultAreaUnit = "sq.ft"
)

// Property is a listed real-estate unit.
type Property struct {
	ID           string            `db:"id" json:"_id"`
	Title        string            `db:"title" json:"title"`
	Location     string            `db:"location" json:"location"`
	City         string            `db:"city" json:"city"`
	Type         string            `db:"type" json:"type"`
	Purpose      string            `db:"purpose" json:"purpose"`
	Price        float64           `db:"price" json:"price"`
	Area         float64           `db:"area" json:"area"`
	AreaUnit     string            `db:"area_unit" json:"areaUnit"`
	Bedrooms     int               `db:"bedrooms" json:"bedrooms"`
	Bathrooms    int               `db:"bathrooms" json:"bathrooms"`
	Description  string            `db:"description" json:"description"`
	ContactPhone string            `db:"contact_phone" json:"contactPhone"`
	Status       string            `db:"status" json:"status"`
	Images       ingest.References `db:"images" json:"images"`
	CreatedAt    time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updatedAt"`
}
