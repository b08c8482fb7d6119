package inquiries

import "time"

const (
	SourceInquiry         = "inquiry"
	SourceQuickInquiry    = "quick_inquiry"
	SourceScheduleViewing = "schedule_viewing"

	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

// Inquiry is a visitor contact request, optionally about one property.
type Inquiry struct {
	ID            string    `db:"id" json:"_id"`
	PropertyID    string    `db:"property_id" json:"propertyId"`
	PropertyTitle string    `db:"property_title" json:"propertyTitle"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Message       string    `db:"message" json:"message"`
	Source        string    `db:"source" json:"source"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
