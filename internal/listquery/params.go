// Package listquery implements the pagination, search, sort and filter
// contract shared by every listing endpoint.
package listquery

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
	// MaxPage bounds page so (page-1)*limit and page*limit cannot overflow.
	MaxPage = 1_000_000_000
)

// Sort is the closed set of orderings a list request may ask for.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort maps raw input to a Sort; anything unknown is newest.
func ParseSort(raw string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(raw))) {
	case SortOldest:
		return SortOldest
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// IsPrice reports whether s orders by price.
func (s Sort) IsPrice() bool {
	return s == SortPriceAsc || s == SortPriceDesc
}

// Options describes the per-kind knobs of a list endpoint.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	// Filters lists the query keys honoured as exact-equality constraints.
	Filters []string
}

// Params is a parsed, clamped list request.
type Params struct {
	Page    int
	Limit   int
	Q       string
	Sort    Sort
	Filters map[string]string
}

// Offset is the number of matching records skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse reads page, limit, q, sort and the configured filters from query
// values. Out-of-range numbers are clamped, never rejected.
func Parse(values url.Values, opts Options) Params {
	defLimit, maxLimit := opts.limits()

	p := Params{
		Page:    1,
		Limit:   defLimit,
		Q:       strings.TrimSpace(values.Get("q")),
		Sort:    ParseSort(values.Get("sort")),
		Filters: map[string]string{},
	}
	if n, ok := parseInt(values.Get("page")); ok {
		p.Page = n
	}
	if n, ok := parseInt(values.Get("limit")); ok {
		p.Limit = n
	}
	p.Page = min(max(p.Page, 1), MaxPage)
	p.Limit = min(max(p.Limit, 1), maxLimit)

	for _, key := range opts.Filters {
		if v := strings.ToLower(strings.TrimSpace(values.Get(key))); v != "" {
			p.Filters[key] = v
		}
	}
	return p
}

// Normalize clamps hand-built params the same way Parse does.
func (p Params) Normalize(opts Options) Params {
	defLimit, maxLimit := opts.limits()
	p.Page = min(max(p.Page, 1), MaxPage)
	if p.Limit == 0 {
		p.Limit = defLimit
	}
	p.Limit = min(max(p.Limit, 1), maxLimit)
	if p.Sort == "" {
		p.Sort = SortNewest
	}
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	return p
}

func (o Options) limits() (int, int) {
	maxLimit := o.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	defLimit := o.DefaultLimit
	if defLimit <= 0 {
		defLimit = DefaultLimit
	}
	return min(defLimit, maxLimit), maxLimit
}

// parseInt accepts integers and integral floats ("2", "2.0"); fractional
// values are truncated toward zero. Results are bounded to ±MaxPage.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return min(max(n, -MaxPage), MaxPage), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f {
		return 0, false
	}
	if f > MaxPage {
		return MaxPage, true
	}
	if f < -MaxPage {
		return -MaxPage, true
	}
	return int(f), true
}
