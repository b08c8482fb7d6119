package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/shared/storage/object/local"
	"realestate-backend/internal/shared/validate"
)

var (
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	pdfBytes = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
)

type upload struct {
	field, name string
	body        []byte
}

func fileHeaders(t *testing.T, uploads ...upload) map[string][]*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = part.Write(u.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		in   string
		kind RefKind
		url  string
	}{
		{in: "https://res.cloudinary.com/x/plan.pdf", kind: External, url: "https://res.cloudinary.com/x/plan.pdf"},
		{in: "  HTTP://example.com/a.jpg ", kind: External, url: "HTTP://example.com/a.jpg"},
		{in: "/uploads/properties/abc_a.jpg", kind: Uploaded, url: "/uploads/properties/abc_a.jpg"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			ref := ParseReference(tc.in)
			assert.Equal(t, tc.kind, ref.Kind)
			assert.Equal(t, tc.url, ref.URL)
		})
	}
}

func TestParseReferenceMatchesConstructors(t *testing.T) {
	assert.Equal(t, ExternalURL("https://cdn.example.com/a.jpg"), ParseReference(" https://cdn.example.com/a.jpg"))
	assert.Equal(t, UploadedURL("/uploads/maps/x_plan.pdf"), ParseReference("/uploads/maps/x_plan.pdf "))
}

func TestReferenceSerializesAsBareString(t *testing.T) {
	refs := References{ExternalURL("https://x.test/a.jpg"), UploadedURL("/uploads/b.jpg")}
	b, err := json.Marshal(refs)
	require.NoError(t, err)
	assert.JSONEq(t, `["https://x.test/a.jpg","/uploads/b.jpg"]`, string(b))

	var back References
	require.NoError(t, back.Scan(b))
	assert.Equal(t, refs, back)

	var single Reference
	require.NoError(t, single.Scan(nil))
	assert.True(t, single.IsZero())
	v, err := single.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestStoreAcceptsMatchingType(t *testing.T) {
	dir := t.TempDir()
	ing := New(local.New(dir, "/uploads"), 1<<20)
	files := fileHeaders(t, upload{field: "pdf", name: "plan.pdf", body: pdfBytes})

	ref, err := ing.Store(context.Background(), PDFSlot("pdf", "maps"), files["pdf"][0])
	require.NoError(t, err)
	assert.Equal(t, Uploaded, ref.Kind)
	assert.True(t, strings.HasPrefix(ref.URL, "/uploads/maps/"), ref.URL)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, stored)
}

func TestStoreRejectsWrongType(t *testing.T) {
	ing := New(local.New(t.TempDir(), "/uploads"), 1<<20)
	files := fileHeaders(t, upload{field: "pdf", name: "fake.pdf", body: pngBytes})

	_, err := ing.Store(context.Background(), PDFSlot("pdf", "maps"), files["pdf"][0])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	errs, ok := AsValidation(err)
	require.True(t, ok)
	assert.True(t, errs.Has("pdf"))
}

func TestStoreRejectsOversize(t *testing.T) {
	ing := New(local.New(t.TempDir(), "/uploads"), 8)
	files := fileHeaders(t, upload{field: "cover", name: "a.png", body: pngBytes})

	_, err := ing.Store(context.Background(), ImageSlot("cover", "maps"), files["cover"][0])
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestStoreAllChecksEveryFileFirst(t *testing.T) {
	dir := t.TempDir()
	ing := New(local.New(dir, "/uploads"), 1<<20)
	files := fileHeaders(t,
		upload{field: "images", name: "a.png", body: pngBytes},
		upload{field: "images", name: "b.pdf", body: pdfBytes},
	)

	_, err := ing.StoreAll(context.Background(), ImageSlot("images", "properties"), files["images"], 12)
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, statErr := os.Stat(filepath.Join(dir, "properties"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be stored when a file is rejected")
}

func TestStoreAllPreservesOrderAndLimit(t *testing.T) {
	ing := New(local.New(t.TempDir(), "/uploads"), 1<<20)
	files := fileHeaders(t,
		upload{field: "images", name: "first.png", body: pngBytes},
		upload{field: "images", name: "second.png", body: pngBytes},
	)

	refs, err := ing.StoreAll(context.Background(), ImageSlot("images", "properties"), files["images"], 12)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.True(t, strings.HasSuffix(refs[0].URL, "_first.png"))
	assert.True(t, strings.HasSuffix(refs[1].URL, "_second.png"))

	_, err = ing.StoreAll(context.Background(), ImageSlot("images", "properties"), files["images"], 1)
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestCheckReportsFieldErrors(t *testing.T) {
	ing := New(local.New(t.TempDir(), "/uploads"), 1<<20)
	files := fileHeaders(t, upload{field: "cover", name: "plan.pdf", body: pdfBytes})

	require.NoError(t, ing.Check(ImageSlot("cover", "maps"), nil))

	err := ing.Check(ImageSlot("cover", "maps"), files["cover"][0])
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("cover"))
}
