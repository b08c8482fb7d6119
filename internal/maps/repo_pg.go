package maps

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

const table = "pdf_maps"

var columns = []string{
	"id", "title", "description", "category", "pdf_url", "image", "tags", "size", "status",
	"created_at", "updated_at",
}

var listSpec = listquery.SQLSpec{
	Table:         table,
	SearchColumns: []string{"title", "description"},
	FilterColumns: map[string]string{"category": "category", "status": "status"},
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, m PdfMap) error {
	query, args, err := listquery.Psql().
		Insert(table).
		Columns(columns...).
		Values(
			m.ID, m.Title, m.Description, m.Category, m.PdfURL, m.Image, m.Tags, m.Size, m.Status,
			m.CreatedAt, m.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert map: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (PdfMap, error) {
	if uuid.Validate(id) != nil {
		return PdfMap{}, ErrNotFound
	}
	query, args, err := listquery.Psql().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return PdfMap{}, fmt.Errorf("build select: %w", err)
	}
	var m PdfMap
	if err := sqlscan.Get(ctx, r.DB, &m, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return PdfMap{}, ErrNotFound
		}
		return PdfMap{}, fmt.Errorf("get map: %w", err)
	}
	return m, nil
}

func (r *PGRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[PdfMap], error) {
	pageQuery, countQuery := listquery.ApplySQL(columns, params, listSpec)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listquery.Page[PdfMap]{}, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listquery.Page[PdfMap]{}, fmt.Errorf("count maps: %w", err)
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return listquery.Page[PdfMap]{}, fmt.Errorf("build list: %w", err)
	}
	var items []PdfMap
	if err := sqlscan.Select(ctx, r.DB, &items, pageSQL, pageArgs...); err != nil {
		return listquery.Page[PdfMap]{}, fmt.Errorf("list maps: %w", err)
	}
	return listquery.NewPage(items, params, total), nil
}

func (r *PGRepo) Update(ctx context.Context, m PdfMap) error {
	if uuid.Validate(m.ID) != nil {
		return ErrNotFound
	}
	query, args, err := listquery.Psql().
		Update(table).
		SetMap(map[string]any{
			"title":       m.Title,
			"description": m.Description,
			"category":    m.Category,
			"pdf_url":     m.PdfURL,
			"image":       m.Image,
			"tags":        m.Tags,
			"size":        m.Size,
			"status":      m.Status,
			"updated_at":  m.UpdatedAt,
		}).
		Where(sq.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if err := db.ExecAffecting(ctx, r.DB, query, args, ErrNotFound); err != nil {
		return fmt.Errorf("update map: %w", err)
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
		return fmt.Errorf("delete map: %w", err)
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	n, err := db.Count(ctx, r.DB, table)
	if err != nil {
		return 0, fmt.Errorf("count maps: %w", err)
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
