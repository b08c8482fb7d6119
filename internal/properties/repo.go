package properties

import (
	"context"

	"realestate-backend/internal/listquery"
)

// Repo defines persistence operations for properties.
type Repo interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, id string) (Property, error)
	List(ctx context.Context, params listquery.Params) (listquery.Page[Property], error)
	Update(ctx context.Context, p Property) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ListOptions are the list-query knobs for properties.
var ListOptions = listquery.Options{
	DefaultLimit: listquery.DefaultLimit,
	MaxLimit:     listquery.MaxLimit,
	Filters:      []string{"city", "type", "purpose", "status"},
}
