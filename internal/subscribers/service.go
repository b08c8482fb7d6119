package subscribers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/validate"
)

// Service contains business logic for subscribers.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Subscribe stores a new email. created is false when the address was
// already on the list, including when a concurrent request won the insert.
func (s *Service) Subscribe(ctx context.Context, in Input) (sub Subscriber, created bool, err error) {
	validate.Lower(in.Email)
	if errs := validate.Create(in); errs != nil {
		return Subscriber{}, false, errs
	}
	email := *in.Email

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return Subscriber{}, false, err
	}

	now := s.now()
	sub = Subscriber{ID: uuid.NewString(), Email: email, CreatedAt: now, UpdatedAt: now}
	if err := s.Repo.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicate) {
			existing, getErr := s.Repo.GetByEmail(ctx, email)
			if getErr != nil {
				return Subscriber{}, false, getErr
			}
			return existing, false, nil
		}
		return Subscriber{}, false, err
	}
	return sub, true, nil
}

func (s *Service) List(ctx context.Context, params listquery.Params) (listquery.Page[Subscriber], error) {
	return s.Repo.List(ctx, params.Normalize(ListOptions))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}
