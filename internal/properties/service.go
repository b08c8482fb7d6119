package properties

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"realestate-backend/internal/ingest"
	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/validate"
)

const imageFolder = "properties"

// Service contains business logic for properties.
type Service struct {
	Repo      Repo
	Ingest    *ingest.Ingestor
	MaxImages int
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) imageSlot() ingest.Slot {
	return ingest.ImageSlot("images", imageFolder)
}

// List returns one page of properties.
func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Property], error) {
	return s.Repo.List(ctx, params.Normalize(ListOptions))
}

// Get returns a single property.
func (s *Service) Get(ctx context.Context, id string) (Property, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create validates in, stores uploaded images after any explicit image URLs,
// and persists the property.
func (s *Service) Create(ctx context.Context, in Input, uploads []*multipart.FileHeader) (Property, error) {
	in.normalize()
	in.applyDefaults()
	if errs := validate.Create(in); errs != nil {
		return Property{}, errs
	}

	images := ingest.References{}
	if in.Images != nil {
		images = append(images, ingest.ParseReferences(*in.Images)...)
	}
	stored, err := s.storeImages(ctx, uploads, len(images))
	if err != nil {
		return Property{}, err
	}
	images = append(images, stored...)

	now := s.now()
	p := Property{
		ID:           uuid.NewString(),
		Title:        *in.Title,
		Location:     *in.Location,
		City:         *in.City,
		Type:         *in.Type,
		Purpose:      *in.Purpose,
		Price:        *in.Price,
		AreaUnit:     *in.AreaUnit,
		Description:  *in.Description,
		ContactPhone: validate.Value(in.ContactPhone),
		Status:       *in.Status,
		Images:       images,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return Property{}, err
	}
	return p, nil
}

// Update applies the supplied fields to an existing property. Images change
// only when the request keeps some or uploads new ones: the result is the
// kept URLs followed by the uploads. Omitting keepImages (and images) with no
// uploads leaves the list untouched rather than clearing it; send
// keepImages=[] to remove every image.
func (s *Service) Update(ctx context.Context, id string, in Input, uploads []*multipart.FileHeader) (Property, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Property{}, err
	}

	in.normalize()
	if errs := validate.Update(in); errs != nil {
		return Property{}, errs
	}

	setString(&p.Title, in.Title)
	setString(&p.Location, in.Location)
	setString(&p.City, in.City)
	setString(&p.Type, in.Type)
	setString(&p.Description, in.Description)
	setString(&p.Purpose, in.Purpose)
	setString(&p.Status, in.Status)
	setString(&p.AreaUnit, in.AreaUnit)
	setString(&p.ContactPhone, in.ContactPhone)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}

	kept := in.retained()
	if kept != nil || len(uploads) > 0 {
		images := ingest.ParseReferences(kept)
		stored, err := s.storeImages(ctx, uploads, len(images))
		if err != nil {
			return Property{}, err
		}
		p.Images = append(images, stored...)
	}

	p.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, p); err != nil {
		return Property{}, err
	}
	return p, nil
}

// Delete removes a property. Stored image files are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Count returns the number of stored properties.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

// LookupTitle returns the title of property id; ok is false when it does not
// exist.
func (s *Service) LookupTitle(ctx context.Context, id string) (title string, ok bool, err error) {
	p, err := s.Repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return p.Title, true, nil
}

func (s *Service) storeImages(ctx context.Context, uploads []*multipart.FileHeader, existing int) (ingest.References, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	limit := s.MaxImages
	if limit > 0 {
		limit -= existing
		if limit <= 0 {
			return nil, validate.Field("images", "too many images")
		}
	}
	refs, err := s.Ingest.StoreAll(ctx, s.imageSlot(), uploads, limit)
	if err != nil {
		if verrs, ok := ingest.AsValidation(err); ok {
			return nil, verrs
		}
		return nil, err
	}
	return refs, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
