// Package gap computes which job-description entities are absent from a CV.
package gap

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Snapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	MissingEntities []string
	CreatedAt       time.Time
}

// Missing returns the sorted set of trimmed, lower-cased jd names that do not
// appear in cv. Values come from the lower-cased jd set, so the original
// casing is not kept.
func Missing(cv, jd []string) []string {
	have := make(map[string]struct{}, len(cv))
	for _, c := range cv {
		if k := key(c); k != "" {
			have[k] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(jd))
	out := make([]string, 0)
	for _, j := range jd {
		k := key(j)
		if k == "" {
			continue
		}
		if _, ok := have[k]; ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
