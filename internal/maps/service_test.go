package maps

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/object/local"
	"realestate-backend/internal/shared/validate"
)

var (
	pdfBytes = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
)

func newService(t *testing.T) *Service {
	t.Helper()
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &Service{
		Repo:   NewMemoryRepo(),
		Ingest: ingest.New(local.New(t.TempDir(), "/uploads"), 1<<20),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func fileHeader(t *testing.T, field, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func str(s string) *string { return &s }

func tags(vals ...string) *validate.StringList {
	l := validate.StringList(vals)
	return &l
}

func TestCreateRequiresPDF(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), Input{Title: str("Phase 1")}, Uploads{})
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("pdfUrl"))

	n, _ := svc.Count(context.Background())
	assert.Zero(t, n)
}

func TestCreateWithExternalURLAndTags(t *testing.T) {
	svc := newService(t)

	m, err := svc.Create(context.Background(), Input{
		Title:    str("  Phase 2 Master Plan "),
		Category: str("Residential"),
		PdfURL:   str("https://cdn.example.com/phase2.pdf"),
		Tags:     tags(" Lahore, DHA", "dha", ""),
	}, Uploads{})
	require.NoError(t, err)

	assert.Equal(t, "Phase 2 Master Plan", m.Title)
	assert.Equal(t, "residential", m.Category)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, ingest.External, m.PdfURL.Kind)
	assert.Equal(t, Tags{"lahore", "dha"}, m.Tags)
	assert.True(t, m.Image.IsZero())
}

func TestCreateDefaultsCategory(t *testing.T) {
	svc := newService(t)
	m, err := svc.Create(context.Background(), Input{Title: str("Plan"), PdfURL: str("/files/plan.pdf")}, Uploads{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, m.Category)
	assert.Equal(t, ingest.Uploaded, m.PdfURL.Kind)
	assert.Equal(t, Tags{}, m.Tags)
}

func TestCreateStoresUploads(t *testing.T) {
	svc := newService(t)
	m, err := svc.Create(context.Background(), Input{Title: str("Uploaded plan")}, Uploads{
		PDF:   fileHeader(t, "pdf", "plan.pdf", pdfBytes),
		Cover: fileHeader(t, "cover", "cover.png", pngBytes),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.PdfURL.URL, "/uploads/maps/"), m.PdfURL.URL)
	assert.True(t, strings.HasSuffix(m.Image.URL, "_cover.png"), m.Image.URL)
}

func TestCreateRejectsWrongFileTypes(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), Input{Title: str("Bad")}, Uploads{
		PDF:   fileHeader(t, "pdf", "plan.pdf", pdfBytes),
		Cover: fileHeader(t, "cover", "cover.pdf", pdfBytes),
	})
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("cover"))

	n, _ := svc.Count(context.Background())
	assert.Zero(t, n)
}

func TestUpdateKeepsReferencesOnBlankURL(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, Input{
		Title:  str("Plan"),
		PdfURL: str("https://cdn.example.com/plan.pdf"),
		Image:  str("https://cdn.example.com/plan.jpg"),
		Tags:   tags("a"),
	}, Uploads{})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Input{
		PdfURL: str(""),
		Status: str("INACTIVE"),
		Tags:   tags("B", "b "),
	}, Uploads{})
	require.NoError(t, err)

	assert.Equal(t, created.PdfURL, updated.PdfURL)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, StatusInactive, updated.Status)
	assert.Equal(t, Tags{"b"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateMissingMap(t *testing.T) {
	svc := newService(t)
	_, err := svc.Update(context.Background(), "nope", Input{}, Uploads{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByCategory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, c := range []string{"residential", "commercial", "residential"} {
		_, err := svc.Create(ctx, Input{Title: str(c + " plan"), Category: str(c), PdfURL: str("/p.pdf")}, Uploads{})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, listquery.Params{Filters: map[string]string{"category": "residential"}})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, listquery.DefaultLimit, page.Limit)
	assert.False(t, page.HasMore)
}
