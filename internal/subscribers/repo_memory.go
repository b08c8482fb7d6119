package subscribers

import (
	"context"
	"sync"
	"time"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/memory"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.Mutex // serializes the email uniqueness check with the insert
	table *memory.Table[Subscriber]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		table: memory.NewTable(func(s Subscriber) string { return s.ID }, nil, ErrNotFound, listquery.Accessor[Subscriber]{
			Search:    func(s Subscriber) []string { return []string{s.Email} },
			CreatedAt: func(s Subscriber) time.Time { return s.CreatedAt },
		}),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, s Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, found, err := r.table.Find(ctx, func(existing Subscriber) bool { return existing.Email == s.Email })
	if err != nil {
		return err
	}
	if found {
		return ErrDuplicate
	}
	return r.table.Insert(ctx, s)
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Subscriber, error) {
	s, found, err := r.table.Find(ctx, func(s Subscriber) bool { return s.Email == email })
	if err != nil {
		return Subscriber{}, err
	}
	if !found {
		return Subscriber{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Subscriber], error) {
	return r.table.List(ctx, params)
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return r.table.Count(ctx)
}

var _ Repo = (*MemoryRepo)(nil)
