package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/pkg/cache"
	"github.com/Skotchmaster/agrilink/pkg/logging"
)

const referenceTTL = 10 * time.Minute

type ReferenceService struct {
	Repo  *repo.GormRepo
	Cache cache.Cache
}

func (s *ReferenceService) Categories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, s.Cache, "categories", func() ([]models.Category, error) {
		return s.Repo.ListCategories(ctx)
	})
}

func (s *ReferenceService) Regions(ctx context.Context) ([]models.Region, error) {
	return cached(ctx, s.Cache, "regions", func() ([]models.Region, error) {
		return s.Repo.ListRegions(ctx)
	})
}

// cached reads key from c, loading and storing it on a miss. Cache failures
// fall through to load.
func cached[T any](ctx context.Context, c cache.Cache, key string, load func() ([]T, error)) ([]T, error) {
	l := logging.FromContext(ctx).With("cache_key", key)

	if c != nil {
		var out []T
		err := c.GetJSON(ctx, key, &out)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			l.Warn("cache_get_error", "error", err)
		}
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.SetJSON(ctx, key, out, referenceTTL); err != nil {
			l.Warn("cache_set_error", "error", err)
		}
	}
	return out, nil
}
