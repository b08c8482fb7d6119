package inquiries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/db"
)

const table = "inquiries"

var columns = []string{
	"id", "property_id", "property_title", "name", "email", "phone", "message", "source", "status",
	"created_at", "updated_at",
}

var listSpec = listquery.SQLSpec{
	Table:         table,
	SearchColumns: []string{"name", "phone", "email", "property_title"},
	FilterColumns: map[string]string{"status": "status", "source": "source"},
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, in Inquiry) error {
	query, args, err := listquery.Psql().
		Insert(table).
		Columns(columns...).
		Values(
			in.ID, in.PropertyID, in.PropertyTitle, in.Name, in.Email, in.Phone, in.Message, in.Source, in.Status,
			in.CreatedAt, in.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Inquiry, error) {
	if uuid.Validate(id) != nil {
		return Inquiry{}, ErrNotFound
	}
	query, args, err := listquery.Psql().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Inquiry{}, fmt.Errorf("build select: %w", err)
	}
	var in Inquiry
	if err := sqlscan.Get(ctx, r.DB, &in, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, fmt.Errorf("get inquiry: %w", err)
	}
	return in, nil
}

func (r *PGRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Inquiry], error) {
	pageQuery, countQuery := listquery.ApplySQL(columns, params, listSpec)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listquery.Page[Inquiry]{}, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listquery.Page[Inquiry]{}, fmt.Errorf("count inquiries: %w", err)
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return listquery.Page[Inquiry]{}, fmt.Errorf("build list: %w", err)
	}
	var items []Inquiry
	if err := sqlscan.Select(ctx, r.DB, &items, pageSQL, pageArgs...); err != nil {
		return listquery.Page[Inquiry]{}, fmt.Errorf("list inquiries: %w", err)
	}
	return listquery.NewPage(items, params, total), nil
}

// UpdateStatus sets status and returns the updated row in one round trip.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (Inquiry, error) {
	if uuid.Validate(id) != nil {
		return Inquiry{}, ErrNotFound
	}
	query, args, err := listquery.Psql().
		Update(table).
		Set("status", status).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return Inquiry{}, fmt.Errorf("build update: %w", err)
	}
	var in Inquiry
	if err := sqlscan.Get(ctx, r.DB, &in, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, fmt.Errorf("update inquiry status: %w", err)
	}
	return in, nil
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
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	n, err := db.Count(ctx, r.DB, table)
	if err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
