package properties

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Property{
		ID:          "7d9f4a52-3c1e-4a6b-9a51-2f2d7e3b8c10",
		Title:       "Corner plot",
		Location:    "Block C",
		City:        "lahore",
		Type:        "plot",
		Purpose:     PurposeSale,
		Price:       100000,
		AreaUnit:    DefaultAreaUnit,
		Description: "Near park",
		Status:      StatusActive,
		Images:      ingest.References{ingest.UploadedURL("/uploads/properties/a.jpg")},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO properties").
		WithArgs(
			p.ID, p.Title, p.Location, p.City, p.Type, p.Purpose, p.Price, p.Area, p.AreaUnit,
			p.Bedrooms, p.Bathrooms, p.Description, p.ContactPhone, p.Status,
			`["/uploads/properties/a.jpg"]`,
			p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRendersFiltersAndSort(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM properties WHERE (city = $1)")).
		WithArgs("lahore").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows(columns).
		AddRow("7d9f4a52-3c1e-4a6b-9a51-2f2d7e3b8c10", "Cheap", "Block A", "lahore", "house", "sale", 100000.0, 0.0, "sq.ft",
			2, 1, "desc", "", "active", []byte(`["https://cdn.example.com/a.jpg"]`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM properties WHERE (city = $1) ORDER BY price ASC, seq ASC LIMIT 1 OFFSET 0")).
		WithArgs("lahore").
		WillReturnRows(rows)

	params := listquery.Params{Page: 1, Limit: 1, Sort: listquery.SortPriceAsc, Filters: map[string]string{"city": "lahore"}}
	page, err := repo.List(context.Background(), params)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 3 || !page.HasMore || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	got := page.Items[0]
	if len(got.Images) != 1 || got.Images[0].Kind != ingest.External {
		t.Fatalf("expected one external image, got %+v", got.Images)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMalformedIDIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no queries: %v", err)
	}
}

func TestPGRepoDeleteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := "7d9f4a52-3c1e-4a6b-9a51-2f2d7e3b8c10"

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM properties WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := "7d9f4a52-3c1e-4a6b-9a51-2f2d7e3b8c10"

	mock.ExpectQuery(regexp.QuoteMeta("FROM properties WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns))

	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
