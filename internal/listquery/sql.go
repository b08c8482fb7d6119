package listquery

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// SQLSpec maps a kind's list semantics onto table columns.
type SQLSpec struct {
	Table string
	// SearchColumns are matched case-insensitively against q.
	SearchColumns []string
	// FilterColumns maps query keys to columns; keys absent here are ignored.
	FilterColumns map[string]string
	// PriceColumn is empty for kinds without a price.
	PriceColumn string
	// CreatedColumn and SeqColumn default to created_at and seq.
	CreatedColumn string
	SeqColumn     string
}

// Psql is the statement builder every Postgres repository uses.
func Psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// ApplySQL returns the page query (columns selected, ordered, windowed) and
// the matching count query for p.
func ApplySQL(columns []string, p Params, spec SQLSpec) (sq.SelectBuilder, sq.SelectBuilder) {
	where := whereClause(p, spec)

	count := Psql().Select("COUNT(*)").From(spec.Table)
	query := Psql().Select(columns...).From(spec.Table)
	if where != nil {
		count = count.Where(where)
		query = query.Where(where)
	}

	query = query.
		OrderBy(orderBy(p.Sort, spec)...).
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))
	return query, count
}

func whereClause(p Params, spec SQLSpec) sq.Sqlizer {
	and := sq.And{}
	if len(p.Filters) > 0 {
		eq := sq.Eq{}
		for key, val := range p.Filters {
			col, ok := spec.FilterColumns[key]
			if !ok || val == "" {
				continue
			}
			eq[col] = val
		}
		if len(eq) > 0 {
			and = append(and, eq)
		}
	}
	if p.Q != "" && len(spec.SearchColumns) > 0 {
		pattern := "%" + EscapeLike(p.Q) + "%"
		or := sq.Or{}
		for _, col := range spec.SearchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		and = append(and, or)
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

func orderBy(s Sort, spec SQLSpec) []string {
	created := spec.CreatedColumn
	if created == "" {
		created = "created_at"
	}
	seq := spec.SeqColumn
	if seq == "" {
		seq = "seq"
	}
	if s.IsPrice() && spec.PriceColumn == "" {
		s = SortNewest
	}
	switch s {
	case SortOldest:
		return []string{created + " ASC", seq + " ASC"}
	case SortPriceAsc:
		return []string{spec.PriceColumn + " ASC", seq + " ASC"}
	case SortPriceDesc:
		return []string{spec.PriceColumn + " DESC", seq + " ASC"}
	default:
		return []string{created + " DESC", seq + " ASC"}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE metacharacters so q is matched literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
