package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devillers/checkin-sub000/internal/domain"
)

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	key := "property:" + id
	var p domain.Property
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

func (s *QueryService) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	// only unfiltered pages are cached; filtered views go to the database
	cacheable := q.City == nil && q.Type == nil
	key := fmt.Sprintf("properties:list:%d", q.Limit)
	var out domain.PropertiesPage
	if cacheable {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	page, err := s.repo.ListProperties(ctx, q)
	if err != nil {
		return domain.PropertiesPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array
	copyPage := deepCopyPropertiesPage(page)

	if cacheable {
		// size guard keeps pathological pages out of redis
		if b, _ := json.Marshal(copyPage); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, copyPage, int(s.cacheTTL.Seconds()))
		}
	}
	return copyPage, nil
}

func deepCopyPropertiesPage(in domain.PropertiesPage) domain.PropertiesPage {
	out := domain.PropertiesPage{NextCursor: in.NextCursor}
	if n := len(in.Items); n > 0 {
		out.Items = make([]domain.PropertySummary, n)
		copy(out.Items, in.Items)
	}
	return out
}
