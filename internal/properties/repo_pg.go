package properties

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

const table = "properties"

var columns = []string{
	"id", "title", "location", "city", "type", "purpose", "price", "area", "area_unit",
	"bedrooms", "bathrooms", "description", "contact_phone", "status", "images",
	"created_at", "updated_at",
}

var listSpec = listquery.SQLSpec{
	Table:         table,
	SearchColumns: []string{"title", "location", "description"},
	FilterColumns: map[string]string{"city": "city", "type": "type", "purpose": "purpose", "status": "status"},
	PriceColumn:   "price",
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, p Property) error {
	query, args, err := listquery.Psql().
		Insert(table).
		Columns(columns...).
		Values(
			p.ID, p.Title, p.Location, p.City, p.Type, p.Purpose, p.Price, p.Area, p.AreaUnit,
			p.Bedrooms, p.Bathrooms, p.Description, p.ContactPhone, p.Status, p.Images,
			p.CreatedAt, p.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Property, error) {
	if uuid.Validate(id) != nil {
		return Property{}, ErrNotFound
	}
	query, args, err := listquery.Psql().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Property{}, fmt.Errorf("build select: %w", err)
	}
	var p Property
	if err := sqlscan.Get(ctx, r.DB, &p, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return Property{}, ErrNotFound
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context, params listquery.Params) (listquery.Page[Property], error) {
	pageQuery, countQuery := listquery.ApplySQL(columns, params, listSpec)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listquery.Page[Property]{}, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listquery.Page[Property]{}, fmt.Errorf("count properties: %w", err)
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return listquery.Page[Property]{}, fmt.Errorf("build list: %w", err)
	}
	var items []Property
	if err := sqlscan.Select(ctx, r.DB, &items, pageSQL, pageArgs...); err != nil {
		return listquery.Page[Property]{}, fmt.Errorf("list properties: %w", err)
	}
	return listquery.NewPage(items, params, total), nil
}

func (r *PGRepo) Update(ctx context.Context, p Property) error {
	if uuid.Validate(p.ID) != nil {
		return ErrNotFound
	}
	query, args, err := listquery.Psql().
		Update(table).
		SetMap(map[string]any{
			"title":         p.Title,
			"location":      p.Location,
			"city":          p.City,
			"type":          p.Type,
			"purpose":       p.Purpose,
			"price":         p.Price,
			"area":          p.Area,
			"area_unit":     p.AreaUnit,
			"bedrooms":      p.Bedrooms,
			"bathrooms":     p.Bathrooms,
			"description":   p.Description,
			"contact_phone": p.ContactPhone,
			"status":        p.Status,
			"images":        p.Images,
			"updated_at":    p.UpdatedAt,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if err := db.ExecAffecting(ctx, r.DB, query, args, ErrNotFound); err != nil {
		return fmt.Errorf("update property: %w", err)
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
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	n, err := db.Count(ctx, r.DB, table)
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
