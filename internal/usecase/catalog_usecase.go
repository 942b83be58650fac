package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"skillgap/internal/catalog"
	"skillgap/internal/domain/course"
	"skillgap/internal/repository"
)

// CourseSearcher is the free-text catalog query.
type CourseSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]course.Course, error)
}

type CatalogUsecase interface {
	Import(ctx context.Context, data []byte, mode string) (catalog.Stats, error)
	Search(ctx context.Context, query string, limit int) ([]course.Course, error)
}

type Catalog struct {
	importer *catalog.Importer
	courses  CourseSearcher
	cache    CatalogCache
	ttl      time.Duration
	logger   *log.Logger
}

func NewCatalogUsecase(importer *catalog.Importer, courses CourseSearcher, cache CatalogCache, ttl time.Duration, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{importer: importer, courses: courses, cache: cache, ttl: ttl, logger: logger}
}

// Import loads a course export. Cached searches and recommendations are
// dropped afterwards so they reflect the new catalog.
func (u *Catalog) Import(ctx context.Context, data []byte, mode string) (catalog.Stats, error) {
	m, err := catalog.ParseMode(mode)
	if err != nil {
		return catalog.Stats{}, fmt.Errorf("%w: mode must be replace or upsert", ErrInvalidInput)
	}

	stats, err := u.importer.Import(ctx, data, m)
	if err != nil {
		if errors.Is(err, catalog.ErrMalformedCatalog) {
			return catalog.Stats{}, ErrMalformedCatalog
		}
		u.logger.Printf("catalog=import status=failed mode=%s err=%v", m, err)
		return catalog.Stats{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, CatalogCachePattern); err != nil {
			u.logger.Printf("cache=catalog status=invalidate_failed err=%v", err)
		}
	}
	return stats, nil
}

func (u *Catalog) Search(ctx context.Context, query string, limit int) ([]course.Course, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = repository.DefaultSearchLimit
	}
	if limit > repository.MaxSearchLimit {
		limit = repository.MaxSearchLimit
	}

	key := CatalogSearchCacheKey(query, limit)
	if u.cache != nil {
		var cached []course.Course
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := u.courses.Search(ctx, query, limit)
	if err != nil {
		u.logger.Printf("catalog=search status=failed err=%v", err)
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil {
			u.logger.Printf("cache=catalog status=set_failed key=%s err=%v", key, err)
		}
	}
	return out, nil
}
