package certificates

import (
	"time"

	"realestate-backend/internal/ingest"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Certificate is an accreditation shown on the public site.
type Certificate struct {
	ID          string           `db:"id" json:"_id"`
	Title       string           `db:"title" json:"title"`
	Issuer      string           `db:"issuer" json:"issuer"`
	IssueDate   string           `db:"issue_date" json:"issueDate"`
	Description string           `db:"description" json:"description"`
	ImageURL    ingest.Reference `db:"image_url" json:"imageUrl"`
	Status      string           `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}
