package maps

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/validate"
)

const folder = "maps"

var (
	pdfSlot   = ingest.PDFSlot("pdf", folder)
	coverSlot = ingest.ImageSlot("cover", folder)
)

// Uploads are the optional files that arrive with a map request.
type Uploads struct {
	PDF   *multipart.FileHeader
	Cover *multipart.FileHeader
}

// Service contains business logic for maps.
type Service struct {
	Repo   Repo
	Ingest *ingest.Ingestor
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[PdfMap], error) {
	return s.Repo.List(ctx, params.Normalize(ListOptions))
}

func (s *Service) Get(ctx context.Context, id string) (PdfMap, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create requires a PDF, either uploaded or as a URL. Both files are checked
// before either is stored.
func (s *Service) Create(ctx context.Context, in Input, files Uploads) (PdfMap, error) {
	in.normalize()
	in.applyDefaults()
	errs := validate.Create(in)
	if files.PDF == nil && validate.Value(in.PdfURL) == "" {
		errs = errs.Add("pdfUrl", "pdfUrl or pdf file is required")
	}
	if err := errs.Err(); err != nil {
		return PdfMap{}, err
	}
	if err := s.check(files); err != nil {
		return PdfMap{}, err
	}

	pdf, err := s.resolve(ctx, pdfSlot, files.PDF, in.PdfURL, ingest.Reference{})
	if err != nil {
		return PdfMap{}, err
	}
	cover, err := s.resolve(ctx, coverSlot, files.Cover, in.Image, ingest.Reference{})
	if err != nil {
		return PdfMap{}, err
	}

	now := s.now()
	m := PdfMap{
		ID:          uuid.NewString(),
		Title:       *in.Title,
		Description: validate.Value(in.Description),
		Category:    *in.Category,
		PdfURL:      pdf,
		Image:       cover,
		Tags:        in.tags(),
		Size:        validate.Value(in.Size),
		Status:      *in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return PdfMap{}, err
	}
	return m, nil
}

// Update applies supplied fields. A new file or a non-empty URL replaces the
// stored reference; anything else leaves it unchanged.
func (s *Service) Update(ctx context.Context, id string, in Input, files Uploads) (PdfMap, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return PdfMap{}, err
	}

	in.normalize()
	if errs := validate.Update(in); errs != nil {
		return PdfMap{}, errs
	}
	if err := s.check(files); err != nil {
		return PdfMap{}, err
	}

	if m.PdfURL, err = s.resolve(ctx, pdfSlot, files.PDF, in.PdfURL, m.PdfURL); err != nil {
		return PdfMap{}, err
	}
	if m.Image, err = s.resolve(ctx, coverSlot, files.Cover, in.Image, m.Image); err != nil {
		return PdfMap{}, err
	}

	setString(&m.Title, in.Title)
	setString(&m.Description, in.Description)
	setString(&m.Size, in.Size)
	setString(&m.Status, in.Status)
	if in.Category != nil && *in.Category != "" {
		m.Category = *in.Category
	}
	if in.Tags != nil {
		m.Tags = in.tags()
	}

	m.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, m); err != nil {
		return PdfMap{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

func (s *Service) check(files Uploads) error {
	if err := s.Ingest.Check(pdfSlot, files.PDF); err != nil {
		return err
	}
	return s.Ingest.Check(coverSlot, files.Cover)
}

// resolve picks the reference for one file slot: an upload wins over a URL,
// and a blank URL keeps current.
func (s *Service) resolve(ctx context.Context, slot ingest.Slot, fh *multipart.FileHeader, url *string, current ingest.Reference) (ingest.Reference, error) {
	if fh != nil {
		ref, err := s.Ingest.Store(ctx, slot, fh)
		if err != nil {
			if verrs, ok := ingest.AsValidation(err); ok {
				return ingest.Reference{}, verrs
			}
			return ingest.Reference{}, err
		}
		return ref, nil
	}
	if u := validate.Value(url); u != "" {
		return ingest.ParseReference(u), nil
	}
	return current, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
