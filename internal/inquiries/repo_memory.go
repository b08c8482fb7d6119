package inquiries

import (
	"context"
	"time"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/memory"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	table *memory.Table[Inquiry]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		table: memory.NewTable(func(in Inquiry) string { return in.ID }, nil, ErrNotFound, accessor),
	}
}

var accessor = listquery.Accessor[Inquiry]{
	Search: func(in Inquiry) []string {
		return []string{in.Name, in.Phone, in.Email, in.PropertyTitle}
	},
	Field: func(in Inquiry, key string) string {
		switch key {
		case "status":
			return in.Status
		case "source":
			return in.Source
		}
		return ""
	},
	CreatedAt: func(in Inquiry) time.Time { return in.CreatedAt },
}

func (r *MemoryRepo) Create(ctx context.Context, in Inquiry) error {
	return r.table.Insert(ctx, in)
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Inquiry, error) {
	return r.table.Get(ctx, id)
}

func (r *MemoryRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Inquiry], error) {
	return r.table.List(ctx, params)
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (Inquiry, error) {
	return r.table.Modify(ctx, id, func(in *Inquiry) {
		in.Status = status
		in.UpdatedAt = at
	})
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return r.table.Count(ctx)
}

var _ Repo = (*MemoryRepo)(nil)
