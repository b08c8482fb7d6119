package certificates

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

const table = "certificates"

var columns = []string{
	"id", "title", "issuer", "issue_date", "description", "image_url", "status", "created_at", "updated_at",
}

var listSpec = listquery.SQLSpec{
	Table:         table,
	SearchColumns: []string{"title", "issuer"},
	FilterColumns: map[string]string{"status": "status"},
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, c Certificate) error {
	query, args, err := listquery.Psql().
		Insert(table).
		Columns(columns...).
		Values(c.ID, c.Title, c.Issuer, c.IssueDate, c.Description, c.ImageURL, c.Status, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Certificate, error) {
	if uuid.Validate(id) != nil {
		return Certificate{}, ErrNotFound
	}
	query, args, err := listquery.Psql().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Certificate{}, fmt.Errorf("build select: %w", err)
	}
	var c Certificate
	if err := sqlscan.Get(ctx, r.DB, &c, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return Certificate{}, ErrNotFound
		}
		return Certificate{}, fmt.Errorf("get certificate: %w", err)
	}
	return c, nil
}

func (r *PGRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Certificate], error) {
	pageQuery, countQuery := listquery.ApplySQL(columns, params, listSpec)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listquery.Page[Certificate]{}, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listquery.Page[Certificate]{}, fmt.Errorf("count certificates: %w", err)
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return listquery.Page[Certificate]{}, fmt.Errorf("build list: %w", err)
	}
	var items []Certificate
	if err := sqlscan.Select(ctx, r.DB, &items, pageSQL, pageArgs...); err != nil {
		return listquery.Page[Certificate]{}, fmt.Errorf("list certificates: %w", err)
	}
	return listquery.NewPage(items, params, total), nil
}

func (r *PGRepo) Update(ctx context.Context, c Certificate) error {
	if uuid.Validate(c.ID) != nil {
		return ErrNotFound
	}
	query, args, err := listquery.Psql().
		Update(table).
		SetMap(map[string]any{
			"title":       c.Title,
			"issuer":      c.Issuer,
			"issue_date":  c.IssueDate,
			"description": c.Description,
			"image_url":   c.ImageURL,
			"status":      c.Status,
			"updated_at":  c.UpdatedAt,
		}).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if err := db.ExecAffecting(ctx, r.DB, query, args, ErrNotFound); err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	return nil
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
		return fmt.Errorf("delete certificate: %w", err)
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	n, err := db.Count(ctx, r.DB, table)
	if err != nil {
		return 0, fmt.Errorf("count certificates: %w", err)
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
