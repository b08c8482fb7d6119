// Package ingest accepts uploaded files at the HTTP boundary, filters them by
// content type and size, and hands them to the object store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"realestate-backend/internal/shared/metrics"
	"realestate-backend/internal/shared/storage/object"
	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/shared/validate"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrTooManyFiles    = errors.New("too many files")
)

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/avif"}
	pdfTypes   = []string{"application/pdf"}
)

// Slot is a named multipart field with the content types it accepts.
type Slot struct {
	Field  string
	Folder string
	Accept []string
}

// ImageSlot accepts common web image formats.
func ImageSlot(field, folder string) Slot {
	return Slot{Field: field, Folder: folder, Accept: imageTypes}
}

// PDFSlot accepts PDF documents only.
func PDFSlot(field, folder string) Slot {
	return Slot{Field: field, Folder: folder, Accept: pdfTypes}
}

// FieldError ties an ingest failure to the multipart field it came from.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// AsValidation converts filter and size failures into field errors so
// handlers answer them with 400. Other errors return false.
func AsValidation(err error) (validate.Errors, bool) {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return nil, false
	}
	switch {
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrTooLarge), errors.Is(err, ErrTooManyFiles):
		return validate.Field(fe.Field, fe.Err.Error()), true
	}
	return nil, false
}

// Ingestor stores accepted uploads and returns references to them.
type Ingestor struct {
	store    object.ObjectStore
	maxBytes int64
}

func New(store object.ObjectStore, maxBytes int64) *Ingestor {
	return &Ingestor{store: store, maxBytes: maxBytes}
}

// Store validates and saves a single file for slot.
func (i *Ingestor) Store(ctx context.Context, slot Slot, fh *multipart.FileHeader) (Reference, error) {
	if err := i.check(slot, fh); err != nil {
		return Reference{}, err
	}
	return i.save(ctx, slot, fh)
}

// StoreAll validates every file before saving any, so a rejected file leaves
// nothing behind. More than max files fails with ErrTooManyFiles.
func (i *Ingestor) StoreAll(ctx context.Context, slot Slot, files []*multipart.FileHeader, max int) (References, error) {
	if max > 0 && len(files) > max {
		metrics.IncUploadRejected()
		return nil, &FieldError{Field: slot.Field, Err: fmt.Errorf("%w: at most %d allowed", ErrTooManyFiles, max)}
	}
	for _, fh := range files {
		if err := i.check(slot, fh); err != nil {
			return nil, err
		}
	}

	refs := make(References, 0, len(files))
	for _, fh := range files {
		ref, err := i.save(ctx, slot, fh)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Check applies the size and content-type filter for slot without saving.
// Nil file headers pass.
func (i *Ingestor) Check(slot Slot, fh *multipart.FileHeader) error {
	if fh == nil {
		return nil
	}
	if err := i.check(slot, fh); err != nil {
		if verrs, ok := AsValidation(err); ok {
			return verrs
		}
		return err
	}
	return nil
}

func (i *Ingestor) check(slot Slot, fh *multipart.FileHeader) error {
	if i.maxBytes > 0 && fh.Size > i.maxBytes {
		metrics.IncUploadRejected()
		return &FieldError{Field: slot.Field, Err: fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, fh.Filename, i.maxBytes)}
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("sniff upload %s: %w", fh.Filename, err)
	}
	if !mimetype.EqualsAny(mtype.String(), slot.Accept...) {
		metrics.IncUploadRejected()
		telemetry.Warn("ingest.rejected", map[string]any{
			"field":     slot.Field,
			"file_name": fh.Filename,
			"mime_type": mtype.String(),
		})
		return &FieldError{Field: slot.Field, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())}
	}
	return nil
}

func (i *Ingestor) save(ctx context.Context, slot Slot, fh *multipart.FileHeader) (Reference, error) {
	f, err := fh.Open()
	if err != nil {
		return Reference{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	var body io.Reader = f
	if i.maxBytes > 0 {
		body = io.LimitReader(f, i.maxBytes)
	}

	key, size, mimeType, err := i.store.Save(ctx, slot.Folder, fh.Filename, body)
	if err != nil {
		return Reference{}, fmt.Errorf("store upload %s: %w", fh.Filename, err)
	}

	metrics.IncUploadStored(size)
	telemetry.Info("ingest.stored", map[string]any{
		"field":       slot.Field,
		"storage_key": key,
		"size_bytes":  size,
		"mime_type":   mimeType,
	})
	return UploadedURL(i.store.URL(key)), nil
}
