package maps

import (
	"context"
	"time"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/memory"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	table *memory.Table[PdfMap]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		table: memory.NewTable(func(m PdfMap) string { return m.ID }, clone, ErrNotFound, accessor),
	}
}

var accessor = listquery.Accessor[PdfMap]{
	Search: func(m PdfMap) []string { return []string{m.Title, m.Description} },
	Field: func(m PdfMap, key string) string {
		switch key {
		case "category":
			return m.Category
		case "status":
			return m.Status
		}
		return ""
	},
	CreatedAt: func(m PdfMap) time.Time { return m.CreatedAt },
}

func (r *MemoryRepo) Create(ctx context.Context, m PdfMap) error {
	return r.table.Insert(ctx, m)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (PdfMap, error) {
	return r.table.Get(ctx, id)
}

func (r *MemoryRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[PdfMap], error) {
	return r.table.List(ctx, params)
}

func (r *MemoryRepo) Update(ctx context.Context, m PdfMap) error {
	return r.table.Replace(ctx, m)
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return r.table.Count(ctx)
}

func clone(m PdfMap) PdfMap {
	m.Tags = append(Tags{}, m.Tags...)
	return m
}

var _ Repo = (*MemoryRepo)(nil)
