package subscribers

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/db"
)

const table = "subscribers"

var columns = []string{"id", "email", "created_at", "updated_at"}

var listSpec = listquery.SQLSpec{
	Table:         table,
	SearchColumns: []string{"email"},
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, s Subscriber) error {
	query, args, err := listquery.Psql().
		Insert(table).
		Columns(columns...).
		Values(s.ID, s.Email, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Subscriber, error) {
	query, args, err := listquery.Psql().Select(columns...).From(table).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return Subscriber{}, fmt.Errorf("build select: %w", err)
	}
	var s Subscriber
	if err := sqlscan.Get(ctx, r.DB, &s, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return Subscriber{}, ErrNotFound
		}
		return Subscriber{}, fmt.Errorf("get subscriber: %w", err)
	}
	return s, nil
}

func (r *PGRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Subscriber], error) {
	pageQuery, countQuery := listquery.ApplySQL(columns, params, listSpec)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listquery.Page[Subscriber]{}, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listquery.Page[Subscriber]{}, fmt.Errorf("count subscribers: %w", err)
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return listquery.Page[Subscriber]{}, fmt.Errorf("build list: %w", err)
	}
	var items []Subscriber
	if err := sqlscan.Select(ctx, r.DB, &items, pageSQL, pageArgs...); err != nil {
		return listquery.Page[Subscriber]{}, fmt.Errorf("list subscribers: %w", err)
	}
	return listquery.NewPage(items, params, total), nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}
	query, args, err := listquery.Psql().Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if err := db.ExecAffecting(ctx, r.DB, query, args, ErrNotFound); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	n, err := db.Count(ctx, r.DB, table)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
