package subscribers

import "time"

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	ID        string    `db:"id" json:"_id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
