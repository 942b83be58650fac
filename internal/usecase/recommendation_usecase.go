package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"skillgap/internal/recommend"
	"skillgap/internal/repository"

	"github.com/google/uuid"
)

type RecommendInput struct {
	LimitPerSkill int
	// Source overrides the configured default when set.
	Source string
	Rank   bool
}

type RecommendResult struct {
	UserID          uuid.UUID
	Source          string
	Missing         []string
	Recommendations map[string][]recommend.Candidate
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, in RecommendInput) (RecommendResult, error)
}

type Recommendation struct {
	snapshots     repository.GapSnapshotRepository
	jd            repository.JDEntityRepository
	sources       map[string]recommend.Source
	defaultSource string
	logger        *log.Logger
}

// NewRecommendationUsecase registers sources by name. Catalog-backed sources
// are wrapped with the per-skill cache when cache is non-nil.
func NewRecommendationUsecase(
	snapshots repository.GapSnapshotRepository,
	jd repository.JDEntityRepository,
	sources []recommend.Source,
	defaultSource string,
	cache CatalogCache,
	ttl time.Duration,
	logger *log.Logger,
) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	byName := make(map[string]recommend.Source, len(sources))
	for _, s := range sources {
		if s == nil {
			continue
		}
		if cache != nil && s.Name() == "catalog" {
			s = &cachedSource{src: s, cache: cache, ttl: ttl, logger: logger}
		}
		byName[s.Name()] = s
	}
	return &Recommendation{
		snapshots:     snapshots,
		jd:            jd,
		sources:       byName,
		defaultSource: strings.ToLower(strings.TrimSpace(defaultSource)),
		logger:        logger,
	}
}

func (u *Recommendation) Recommend(ctx context.Context, userID uuid.UUID, in RecommendInput) (RecommendResult, error) {
	name := strings.ToLower(strings.TrimSpace(in.Source))
	if name == "" {
		name = u.defaultSource
	}
	src, ok := u.sources[name]
	if !ok {
		return RecommendResult{}, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, in.Source)
	}

	snap, err := u.snapshots.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGapSnapshotNotFound) {
			return RecommendResult{}, ErrNoGapSnapshot
		}
		return RecommendResult{}, ErrInternal
	}

	req := recommend.Request{
		Missing:       snap.MissingEntities,
		LimitPerSkill: in.LimitPerSkill,
		Rank:          in.Rank,
	}
	if in.Rank {
		jdNames, err := u.jd.Names(ctx)
		if err != nil {
			return RecommendResult{}, ErrInternal
		}
		req.JDEntities = jdNames
	}

	recs, err := recommend.Recommend(ctx, src, req)
	if err != nil {
		u.logger.Printf("recommend status=failed user_id=%s source=%s err=%v", userID, name, err)
		return RecommendResult{}, ErrInternal
	}

	return RecommendResult{
		UserID:          userID,
		Source:          name,
		Missing:         snap.MissingEntities,
		Recommendations: recs,
	}, nil
}
