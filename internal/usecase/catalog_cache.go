package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"skillgap/internal/recommend"
)

const (
	catalogCachePrefix = "catalog:"
	// CatalogCachePattern matches every key written by the catalog caches.
	CatalogCachePattern = catalogCachePrefix + "*"
)

type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type catalogCacheKeyInput struct {
	Query string `json:"query,omitempty"`
	Skill string `json:"skill,omitempty"`
	Limit int    `json:"limit"`
}

// Lookups match case-insensitively, so keys ignore case too.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hashKey(in catalogCacheKeyInput) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func CatalogSearchCacheKey(query string, limit int) string {
	return catalogCachePrefix + "search:" + hashKey(catalogCacheKeyInput{Query: normalizeSearchValue(query), Limit: limit})
}

func CatalogSkillCacheKey(skill string, limit int) string {
	return catalogCachePrefix + "skill:" + hashKey(catalogCacheKeyInput{Skill: normalizeSearchValue(skill), Limit: limit})
}

// cachedSource memoises per-skill catalog lookups. Cache failures fall
// through to the wrapped source.
type cachedSource struct {
	src    recommend.Source
	cache  CatalogCache
	ttl    time.Duration
	logger *log.Logger
}

func (s *cachedSource) Name() string { return s.src.Name() }

func (s *cachedSource) Candidates(ctx context.Context, skill string, limit int) ([]recommend.Candidate, error) {
	key := CatalogSkillCacheKey(skill, limit)

	var cached []recommend.Candidate
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	out, err := s.src.Candidates(ctx, skill, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
		s.logger.Printf("cache=catalog status=set_failed key=%s err=%v", key, err)
	}
	return out, nil
}
