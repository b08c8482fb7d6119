package listquery

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	ID      string
	Title   string
	City    string
	Price   float64
	Created time.Time
}

var listingAccess = Accessor[listing]{
	Search: func(l listing) []string { return []string{l.Title} },
	Field: func(l listing, key string) string {
		if key == "city" {
			return l.City
		}
		return ""
	},
	Price:     func(l listing) float64 { return l.Price },
	CreatedAt: func(l listing) time.Time { return l.Created },
}

func ids(items []listing) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestParseDefaultsAndClamping(t *testing.T) {
	opts := Options{Filters: []string{"city"}}
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantSort  Sort
	}{
		{name: "empty", query: "", wantPage: 1, wantLimit: 12, wantSort: SortNewest},
		{name: "zero page", query: "page=0&limit=5", wantPage: 1, wantLimit: 5, wantSort: SortNewest},
		{name: "negative", query: "page=-3&limit=-1", wantPage: 1, wantLimit: 1, wantSort: SortNewest},
		{name: "over max", query: "limit=1000", wantPage: 1, wantLimit: 100, wantSort: SortNewest},
		{name: "float", query: "page=2.7&limit=3.0", wantPage: 2, wantLimit: 3, wantSort: SortNewest},
		{name: "garbage", query: "page=abc&limit=x&sort=weird", wantPage: 1, wantLimit: 12, wantSort: SortNewest},
		{name: "sort", query: "sort=PRICE_ASC", wantPage: 1, wantLimit: 12, wantSort: SortPriceAsc},
		{name: "huge page", query: "page=9223372036854775807", wantPage: MaxPage, wantLimit: 12, wantSort: SortNewest},
		{name: "beyond int64", query: "page=99999999999999999999&limit=-9223372036854775808", wantPage: MaxPage, wantLimit: 1, wantSort: SortNewest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			p := Parse(values, opts)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantSort, p.Sort)
		})
	}
}

func TestHugePageYieldsEmptyWindow(t *testing.T) {
	p := Parse(url.Values{"page": {"9223372036854775807"}, "limit": {"100"}}, Options{})
	assert.Positive(t, p.Offset())

	items := []listing{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	page := Apply(items, p, listingAccess)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Equal(t, 3, page.Total)

	query, _ := ApplySQL([]string{"id"}, p, SQLSpec{Table: "properties"})
	sqlText, _, err := query.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlText, "OFFSET 99999999900")

	n := Params{Page: 1 << 62, Limit: 500}.Normalize(Options{})
	assert.Equal(t, MaxPage, n.Page)
}

func TestParseFiltersLowercasedAndEmptyDropped(t *testing.T) {
	values := url.Values{"city": {"  LAHORE "}, "type": {""}, "other": {"x"}}
	p := Parse(values, Options{Filters: []string{"city", "type"}})
	assert.Equal(t, map[string]string{"city": "lahore"}, p.Filters)
}

func TestParseKindLimits(t *testing.T) {
	p := Parse(url.Values{}, Options{DefaultLimit: 500, MaxLimit: 500})
	assert.Equal(t, 500, p.Limit)
	p = Parse(url.Values{"limit": {"9999"}}, Options{DefaultLimit: 500, MaxLimit: 500})
	assert.Equal(t, 500, p.Limit)
}

func TestApplyPriceSortAndHasMore(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []listing{
		{ID: "a", Price: 300000, Created: base},
		{ID: "b", Price: 100000, Created: base.Add(time.Minute)},
		{ID: "c", Price: 200000, Created: base.Add(2 * time.Minute)},
	}

	page := Apply(items, Params{Page: 1, Limit: 2, Sort: SortPriceAsc}, listingAccess)
	assert.Equal(t, []string{"b", "c"}, ids(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasMore)

	page = Apply(items, Params{Page: 2, Limit: 2, Sort: SortPriceAsc}, listingAccess)
	assert.Equal(t, []string{"a"}, ids(page.Items))
	assert.False(t, page.HasMore)
}

func TestApplyNewestAndOldest(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []listing{
		{ID: "a", Created: base},
		{ID: "b", Created: base.Add(time.Hour)},
		{ID: "c", Created: base.Add(2 * time.Hour)},
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids(Apply(items, Params{Page: 1, Limit: 10}, listingAccess).Items))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Apply(items, Params{Page: 1, Limit: 10, Sort: SortOldest}, listingAccess).Items))
}

func TestApplyTiesKeepInsertionOrder(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []listing{
		{ID: "a", Price: 5, Created: at},
		{ID: "b", Price: 5, Created: at},
		{ID: "c", Price: 5, Created: at},
	}
	for _, s := range []Sort{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc} {
		page := Apply(items, Params{Page: 1, Limit: 10, Sort: s}, listingAccess)
		assert.Equal(t, []string{"a", "b", "c"}, ids(page.Items), string(s))
	}
}

func TestApplySearchAndFilter(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []listing{
		{ID: "a", Title: "Corner Plot DHA", City: "lahore", Created: at},
		{ID: "b", Title: "Family house", City: "karachi", Created: at},
		{ID: "c", Title: "dha villa", City: "karachi", Created: at},
	}
	page := Apply(items, Params{Page: 1, Limit: 10, Q: "DhA"}, listingAccess)
	assert.Equal(t, []string{"a", "c"}, ids(page.Items))

	page = Apply(items, Params{Page: 1, Limit: 10, Q: "dha", Filters: map[string]string{"city": "karachi"}}, listingAccess)
	assert.Equal(t, []string{"c"}, ids(page.Items))
	assert.Equal(t, 1, page.Total)
}

func TestApplyPageBeyondEnd(t *testing.T) {
	page := Apply([]listing{{ID: "a"}}, Params{Page: 5, Limit: 10}, listingAccess)
	require.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
}

func TestApplyPriceSortWithoutPriceFallsBack(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	acc := listingAccess
	acc.Price = nil
	items := []listing{{ID: "a", Created: base}, {ID: "b", Created: base.Add(time.Hour)}}
	page := Apply(items, Params{Page: 1, Limit: 10, Sort: SortPriceDesc}, acc)
	assert.Equal(t, []string{"b", "a"}, ids(page.Items))
}

func TestApplySQLRendersWindowAndCount(t *testing.T) {
	spec := SQLSpec{
		Table:         "properties",
		SearchColumns: []string{"title", "location"},
		FilterColumns: map[string]string{"city": "city"},
		PriceColumn:   "price",
	}
	p := Params{Page: 2, Limit: 5, Q: "50%_off", Sort: SortPriceDesc, Filters: map[string]string{"city": "lahore", "ignored": "x"}}

	query, count := ApplySQL([]string{"id", "title"}, p, spec)

	sqlText, args, err := query.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlText, "SELECT id, title FROM properties WHERE")
	assert.Contains(t, sqlText, "city = $1")
	assert.Contains(t, sqlText, "title ILIKE $2")
	assert.Contains(t, sqlText, "location ILIKE $3")
	assert.Contains(t, sqlText, "ORDER BY price DESC, seq ASC LIMIT 5 OFFSET 5")
	assert.Equal(t, []any{"lahore", `%50\%\_off%`, `%50\%\_off%`}, args)
	assert.NotContains(t, sqlText, "ignored")

	countText, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(countText, "SELECT COUNT(*) FROM properties WHERE"))
	assert.NotContains(t, countText, "ORDER BY")
	assert.Len(t, countArgs, 3)
}

func TestApplySQLWithoutConstraints(t *testing.T) {
	query, count := ApplySQL([]string{"id"}, Params{Page: 1, Limit: 12, Sort: SortPriceAsc}, SQLSpec{Table: "certificates"})
	sqlText, args, err := query.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM certificates ORDER BY created_at DESC, seq ASC LIMIT 12 OFFSET 0", sqlText)
	assert.Empty(t, args)

	countText, _, err := count.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM certificates", countText)
}

func TestNewPageHasMore(t *testing.T) {
	assert.True(t, NewPage([]int{1}, Params{Page: 1, Limit: 1}, 2).HasMore)
	assert.False(t, NewPage([]int{1}, Params{Page: 2, Limit: 1}, 2).HasMore)
	assert.NotNil(t, NewPage[int](nil, Params{Page: 1, Limit: 1}, 0).Items)
}
