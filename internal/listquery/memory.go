package listquery

import (
	"sort"
	"strings"
	"time"
)

// Accessor exposes the record fields the in-memory evaluator needs.
type Accessor[T any] struct {
	// Search returns the values q is matched against.
	Search func(T) []string
	// Field returns the value of a filterable field by query key.
	Field func(T, string) string
	// Price is optional; kinds without a price sort price requests as newest.
	Price     func(T) float64
	CreatedAt func(T) time.Time
}

// Apply evaluates p over items, which must be in insertion order. Equal sort
// keys keep insertion order, so repeated calls return the same sequence.
func Apply[T any](items []T, p Params, acc Accessor[T]) Page[T] {
	q := strings.ToLower(p.Q)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesFilters(item, p.Filters, acc) {
			continue
		}
		if q != "" && !matchesText(item, q, acc) {
			continue
		}
		matched = append(matched, item)
	}

	sortKey := p.Sort
	if sortKey.IsPrice() && acc.Price == nil {
		sortKey = SortNewest
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch sortKey {
		case SortOldest:
			return acc.CreatedAt(a).Before(acc.CreatedAt(b))
		case SortPriceAsc:
			return acc.Price(a) < acc.Price(b)
		case SortPriceDesc:
			return acc.Price(a) > acc.Price(b)
		default:
			return acc.CreatedAt(a).After(acc.CreatedAt(b))
		}
	})

	total := len(matched)
	start := min(p.Offset(), total)
	end := min(start+p.Limit, total)
	window := make([]T, end-start)
	copy(window, matched[start:end])
	return NewPage(window, p, total)
}

func matchesFilters[T any](item T, filters map[string]string, acc Accessor[T]) bool {
	if acc.Field == nil {
		return len(filters) == 0
	}
	for key, want := range filters {
		if want == "" {
			continue
		}
		if acc.Field(item, key) != want {
			return false
		}
	}
	return true
}

func matchesText[T any](item T, q string, acc Accessor[T]) bool {
	if acc.Search == nil {
		return false
	}
	for _, v := range acc.Search(item) {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
