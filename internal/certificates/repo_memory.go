package certificates

import (
	"context"
	"time"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/memory"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	table *memory.Table[Certificate]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		table: memory.NewTable(func(c Certificate) string { return c.ID }, nil, ErrNotFound, accessor),
	}
}

var accessor = listquery.Accessor[Certificate]{
	Search: func(c Certificate) []string { return []string{c.Title, c.Issuer} },
	Field: func(c Certificate, key string) string {
		if key == "status" {
			return c.Status
		}
		return ""
	},
	CreatedAt: func(c Certificate) time.Time { return c.CreatedAt },
}

func (r *MemoryRepo) Create(ctx context.Context, c Certificate) error {
	return r.table.Insert(ctx, c)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Certificate, error) {
	return r.table.Get(ctx, id)
}

func (r *MemoryRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Certificate], error) {
	return r.table.List(ctx, params)
}

func (r *MemoryRepo) Update(ctx context.Context, c Certificate) error {
	return r.table.Replace(ctx, c)
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return r.table.Count(ctx)
}

var _ Repo = (*MemoryRepo)(nil)
