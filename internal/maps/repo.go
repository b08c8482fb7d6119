package maps

import (
	"context"

	"realestate-backend/internal/listquery"
)

// Repo defines persistence operations for maps.
type Repo interface {
	Create(ctx context.Context, m PdfMap) error
	GetByID(ctx context.Context, id string) (PdfMap, error)
	List(ctx context.Context, params listquery.Params) (listquery.Page[PdfMap], error)
	Update(ctx context.Context, m PdfMap) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

var ListOptions = listquery.Options{
	DefaultLimit: listquery.DefaultLimit,
	MaxLimit:     listquery.MaxLimit,
	Filters:      []string{"category", "status"},
}
