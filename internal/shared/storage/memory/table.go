// Package memory holds the insertion-ordered record table behind every
// in-memory repository.
package memory

import (
	"context"
	"sync"

	"realestate-backend/internal/listquery"
)

// Table stores records of one kind in insertion order.
type Table[T any] struct {
	mu       sync.RWMutex
	items    []T
	id       func(T) string
	clone    func(T) T
	notFound error
	access   listquery.Accessor[T]
}

// NewTable builds a Table. clone may be nil for records without reference
// fields; notFound is returned for unknown ids.
func NewTable[T any](id func(T) string, clone func(T) T, notFound error, access listquery.Accessor[T]) *Table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Table[T]{id: id, clone: clone, notFound: notFound, access: access}
}

func (t *Table[T]) Insert(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, t.clone(v))
	return nil
}

func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.indexOf(id); i >= 0 {
		return t.clone(t.items[i]), nil
	}
	return zero, t.notFound
}

// Find returns the first record matching fn.
func (t *Table[T]) Find(ctx context.Context, fn func(T) bool) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, v := range t.items {
		if fn(v) {
			return t.clone(v), true, nil
		}
	}
	return zero, false, nil
}

func (t *Table[T]) List(ctx context.Context, params listquery.Params) (listquery.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return listquery.Page[T]{}, err
	}
	t.mu.RLock()
	snapshot := make([]T, len(t.items))
	for i, v := range t.items {
		snapshot[i] = t.clone(v)
	}
	t.mu.RUnlock()
	return listquery.Apply(snapshot, params, t.access), nil
}

// Replace overwrites the record with the same id.
func (t *Table[T]) Replace(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(t.id(v))
	if i < 0 {
		return t.notFound
	}
	t.items[i] = t.clone(v)
	return nil
}

// Modify applies fn to the stored record in place and returns the result.
func (t *Table[T]) Modify(ctx context.Context, id string, fn func(*T)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return zero, t.notFound
	}
	fn(&t.items[i])
	return t.clone(t.items[i]), nil
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return t.notFound
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return nil
}

func (t *Table[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items), nil
}

func (t *Table[T]) indexOf(id string) int {
	for i := range t.items {
		if t.id(t.items[i]) == id {
			return i
		}
	}
	return -1
}
