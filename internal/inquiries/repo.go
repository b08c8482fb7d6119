package inquiries

import (
	"context"
	"time"

	"realestate-backend/internal/listquery"
)

// Repo defines persistence operations for inquiries.
type Repo interface {
	Create(ctx context.Context, in Inquiry) error
	GetByID(ctx context.Context, id string) (Inquiry, error)
	List(ctx context.Context, params listquery.Params) (listquery.Page[Inquiry], error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (Inquiry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ListOptions keeps the admin inbox on one page by default.
var ListOptions = listquery.Options{
	DefaultLimit: 500,
	MaxLimit:     500,
	Filters:      []string{"status", "source"},
}
