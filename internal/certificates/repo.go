package certificates

import (
	"context"

	"realestate-backend/internal/listquery"
)

// Repo defines persistence operations for certificates.
type Repo interface {
	Create(ctx context.Context, c Certificate) error
	GetByID(ctx context.Context, id string) (Certificate, error)
	List(ctx context.Context, params listquery.Params) (listquery.Page[Certificate], error)
	Update(ctx context.Context, c Certificate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

var ListOptions = listquery.Options{
	DefaultLimit: listquery.DefaultLimit,
	MaxLimit:     listquery.MaxLimit,
	Filters:      []string{"status"},
}
