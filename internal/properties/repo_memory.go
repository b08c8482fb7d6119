package properties

import (
	"context"
	"time"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/memory"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	table *memory.Table[Property]
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		table: memory.NewTable(func(p Property) string { return p.ID }, clone, ErrNotFound, accessor),
	}
}

var accessor = listquery.Accessor[Property]{
	Search: func(p Property) []string {
		return []string{p.Title, p.Location, p.Description}
	},
	Field: func(p Property, key string) string {
		switch key {
		case "city":
			return p.City
		case "type":
			return p.Type
		case "purpose":
			return p.Purpose
		case "status":
			return p.Status
		}
		return ""
	},
	Price:     func(p Property) float64 { return p.Price },
	CreatedAt: func(p Property) time.Time { return p.CreatedAt },
}

func (r *MemoryRepo) Create(ctx context.Context, p Property) error {
	return r.table.Insert(ctx, p)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Property, error) {
	return r.table.Get(ctx, id)
}

func (r *MemoryRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Property], error) {
	return r.table.List(ctx, params)
}

func (r *MemoryRepo) Update(ctx context.Context, p Property) error {
	return r.table.Replace(ctx, p)
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return r.table.Count(ctx)
}

func clone(p Property) Property {
	p.Images = append(ingest.References{}, p.Images...)
	return p
}

var _ Repo = (*MemoryRepo)(nil)
