package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/devillers/checkin-sub000/internal/adapters/observability"
	"github.com/devillers/checkin-sub000/internal/domain"
	"github.com/devillers/checkin-sub000/internal/normalize"
)

// PropertyService handles the write path: run a submission through the
// normalization engine, persist the canonical document, append an activity
// entry and drop any stale cache entries.
type PropertyService struct {
	repo  domain.PropertyRepository
	cache domain.Cache
	ids   domain.IDGenerator
}

func NewPropertyService(r domain.PropertyRepository, c domain.Cache, ids domain.IDGenerator) *PropertyService {
	return &PropertyService{repo: r, cache: c, ids: ids}
}

func (s *PropertyService) CreateProperty(ctx context.Context, sub domain.Submission, actor string) (domain.Property, error) {
	p, err := normalize.Normalize(sub, s.ids)
	observability.ObserveNormalize("create", err == nil)
	if err != nil {
		return domain.Property{}, err
	}

	// Slugs address the public mini-site; two listings cannot share one.
	if _, err := s.repo.GetPropertyBySlug(ctx, p.Slug); err == nil {
		return domain.Property{}, &normalize.ValidationError{Message: fmt.Sprintf("slug %q is already in use", p.Slug)}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Property{}, err
	}

	p.ID = s.ids.NewID()
	if err := s.repo.UpsertProperty(ctx, p); err != nil {
		return domain.Property{}, err
	}
	_ = s.repo.AppendActivity(ctx, domain.ActivityEntry{
		PropertyID: p.ID,
		Action:     "create",
		Actor:      actor,
		Detail:     p.Name,
	})
	if s.cache != nil {
		s.invalidate(ctx, p.ID)
	}
	return p, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id string, sub domain.Submission, actor string) (domain.Property, error) {
	existing, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	p, err := normalize.Normalize(sub, s.ids)
	observability.ObserveNormalize("update", err == nil)
	if err != nil {
		return domain.Property{}, err
	}

	// The normalized document replaces the stored one under the same id.
	p.ID = existing.ID
	if p.Slug != existing.Slug {
		if _, err := s.repo.GetPropertyBySlug(ctx, p.Slug); err == nil {
			return domain.Property{}, &normalize.ValidationError{Message: fmt.Sprintf("slug %q is already in use", p.Slug)}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Property{}, err
		}
	}
	if err := s.repo.UpsertProperty(ctx, p); err != nil {
		return domain.Property{}, err
	}
	_ = s.repo.AppendActivity(ctx, domain.ActivityEntry{
		PropertyID: p.ID,
		Action:     "update",
		Actor:      actor,
		Detail:     p.Name,
	})
	if s.cache != nil {
		s.invalidate(ctx, p.ID)
	}
	return p, nil
}

// invalidate drops the property cache plus the common listing-page variants.
func (s *PropertyService) invalidate(ctx context.Context, id string) {
	_ = s.cache.Del(ctx, "property:"+id)
	for _, lim := range []int{20, 50, 100} {
		_ = s.cache.Del(ctx, fmt.Sprintf("properties:list:%d", lim))
	}
}
