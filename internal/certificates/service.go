package certificates

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/validate"
)

var imageSlot = ingest.ImageSlot("image", "certificates")

// Service contains business logic for certificates.
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

func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Certificate], error) {
	return s.Repo.List(ctx, params.Normalize(ListOptions))
}

func (s *Service) Get(ctx context.Context, id string) (Certificate, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create requires an image, either uploaded or as a URL.
func (s *Service) Create(ctx context.Context, in Input, image *multipart.FileHeader) (Certificate, error) {
	in.normalize()
	validate.Default(&in.Status, StatusActive)
	errs := validate.Create(in)
	if image == nil && validate.Value(in.ImageURL) == "" {
		errs = errs.Add("imageUrl", "imageUrl or image file is required")
	}
	if err := errs.Err(); err != nil {
		return Certificate{}, err
	}

	ref, err := s.resolveImage(ctx, image, in.ImageURL, ingest.Reference{})
	if err != nil {
		return Certificate{}, err
	}

	now := s.now()
	c := Certificate{
		ID:          uuid.NewString(),
		Title:       *in.Title,
		Issuer:      validate.Value(in.Issuer),
		IssueDate:   validate.Value(in.IssueDate),
		Description: validate.Value(in.Description),
		ImageURL:    ref,
		Status:      *in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Certificate{}, err
	}
	return c, nil
}

// Update applies supplied fields; the image changes only on a new upload or
// a non-empty URL.
func (s *Service) Update(ctx context.Context, id string, in Input, image *multipart.FileHeader) (Certificate, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Certificate{}, err
	}

	in.normalize()
	if errs := validate.Update(in); errs != nil {
		return Certificate{}, errs
	}
	if c.ImageURL, err = s.resolveImage(ctx, image, in.ImageURL, c.ImageURL); err != nil {
		return Certificate{}, err
	}

	setString(&c.Title, in.Title)
	setString(&c.Issuer, in.Issuer)
	setString(&c.IssueDate, in.IssueDate)
	setString(&c.Description, in.Description)
	setString(&c.Status, in.Status)

	c.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, c); err != nil {
		return Certificate{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

func (s *Service) resolveImage(ctx context.Context, fh *multipart.FileHeader, url *string, current ingest.Reference) (ingest.Reference, error) {
	if fh != nil {
		ref, err := s.Ingest.Store(ctx, imageSlot, fh)
		if verrs, ok := ingest.AsValidation(err); ok {
			return ingest.Reference{}, verrs
		}
		return ref, err
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
