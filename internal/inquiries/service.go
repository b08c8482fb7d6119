package inquiries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/shared/validate"
)

// PropertyTitles resolves the title shown next to an inquiry.
type PropertyTitles interface {
	LookupTitle(ctx context.Context, id string) (title string, ok bool, err error)
}

// Service contains business logic for inquiries.
type Service struct {
	Repo   Repo
	Titles PropertyTitles
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Inquiry], error) {
	return s.Repo.List(ctx, params.Normalize(ListOptions))
}

// Create records a public inquiry. When propertyId names a stored property
// its current title wins over the submitted one; an unknown id is kept as is.
func (s *Service) Create(ctx context.Context, in Input) (Inquiry, error) {
	in.normalize()
	if errs := validate.Create(in); errs != nil {
		return Inquiry{}, errs
	}

	now := s.now()
	inq := Inquiry{
		ID:            uuid.NewString(),
		PropertyID:    validate.Value(in.PropertyID),
		PropertyTitle: validate.Value(in.PropertyTitle),
		Name:          *in.Name,
		Email:         validate.Value(in.Email),
		Phone:         *in.Phone,
		Message:       *in.Message,
		Source:        *in.Source,
		Status:        StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if inq.PropertyID != "" && s.Titles != nil {
		title, ok, err := s.Titles.LookupTitle(ctx, inq.PropertyID)
		switch {
		case err != nil:
			telemetry.Warn("inquiries.title_lookup_failed", map[string]any{
				"property_id": inq.PropertyID,
				"error":       err.Error(),
			})
		case ok:
			inq.PropertyTitle = title
		}
	}

	if err := s.Repo.Create(ctx, inq); err != nil {
		return Inquiry{}, err
	}
	return inq, nil
}

// SetStatus moves an inquiry to one of new, contacted or closed.
func (s *Service) SetStatus(ctx context.Context, id string, in StatusInput) (Inquiry, error) {
	validate.Lower(in.Status)
	if errs := validate.Update(in); errs != nil {
		return Inquiry{}, errs
	}
	return s.Repo.UpdateStatus(ctx, id, *in.Status, s.now())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}
