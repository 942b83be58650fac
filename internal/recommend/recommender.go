package recommend

import (
	"context"
	"fmt"
)

const (
	DefaultLimitPerSkill = 5
	MaxLimitPerSkill     = 50
)

type Request struct {
	Missing       []string
	LimitPerSkill int
	Rank          bool
	// JDEntities feeds the frequency band when Rank is set.
	JDEntities []string
}

// Recommend maps each missing skill that has at least one candidate to its
// course list.
func Recommend(ctx context.Context, src Source, req Request) (map[string][]Candidate, error) {
	limit := ClampLimit(req.LimitPerSkill)

	out := make(map[string][]Candidate)
	for _, skill := range req.Missing {
		if _, done := out[skill]; done {
			continue
		}
		cands, err := src.Candidates(ctx, skill, limit)
		if err != nil {
			return nil, fmt.Errorf("%s candidates for %q: %w", src.Name(), skill, err)
		}
		if len(cands) == 0 {
			continue
		}
		if req.Rank {
			cands = Rank(skill, cands, req.JDEntities, req.Missing)
		}
		out[skill] = cands
	}
	return out, nil
}

func ClampLimit(n int) int {
	if n <= 0 {
		return DefaultLimitPerSkill
	}
	if n > MaxLimitPerSkill {
		return MaxLimitPerSkill
	}
	return n
}
