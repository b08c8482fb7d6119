package certificates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/storage/object/local"
	"realestate-backend/internal/shared/validate"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Repo:   NewMemoryRepo(),
		Ingest: ingest.New(local.New(t.TempDir(), "/uploads"), 1<<20),
	}
}

func str(s string) *string { return &s }

func TestCreateRequiresImage(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), Input{Title: str("ISO 9001")}, nil)

	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("imageUrl"))
	assert.False(t, errs.Has("title"))
}

func TestCreateAndUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, Input{
		Title:    str("Approved Developer"),
		Issuer:   str(" LDA "),
		ImageURL: str("https://cdn.example.com/lda.jpg"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "LDA", c.Issuer)
	assert.Equal(t, StatusActive, c.Status)
	assert.Equal(t, ingest.External, c.ImageURL.Kind)

	updated, err := svc.Update(ctx, c.ID, Input{ImageURL: str(""), Status: str("inactive")}, nil)
	require.NoError(t, err)
	assert.Equal(t, c.ImageURL, updated.ImageURL)
	assert.Equal(t, StatusInactive, updated.Status)

	_, err = svc.Update(ctx, c.ID, Input{Status: str("archived")}, nil)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("status"))
}

func TestListSearchesIssuer(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, issuer := range []string{"LDA", "RUDA", "FDA"} {
		_, err := svc.Create(ctx, Input{Title: str("Cert"), Issuer: str(issuer), ImageURL: str("/c.jpg")}, nil)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, listquery.Params{Q: "ruda"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "RUDA", page.Items[0].Issuer)
}

func TestDeleteMissing(t *testing.T) {
	assert.ErrorIs(t, newService(t).Delete(context.Background(), "missing"), ErrNotFound)
}
