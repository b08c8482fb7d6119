package subscribers

import (
	"context"

	"realestate-backend/internal/listquery"
)

// Repo defines persistence operations for subscribers. Create fails with
// ErrDuplicate when the email is already stored.
type Repo interface {
	Create(ctx context.Context, s Subscriber) error
	GetByEmail(ctx context.Context, email string) (Subscriber, error)
	List(ctx context.Context, params listquery.Params) (listquery.Page[Subscriber], error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

var ListOptions = listquery.Options{
	DefaultLimit: 1000,
	MaxLimit:     1000,
}
