package recommend

import (
	"sort"
	"strings"
)

// TopK is how many ranked courses are kept per skill.
const TopK = 3

// InferLevel scores how approachable a course looks from its title.
func InferLevel(title string) int {
	t := strings.ToLower(title)
	for _, w := range []string{"beginner", "introduction", "fundamentals"} {
		if strings.Contains(t, w) {
			return 3
		}
	}
	if strings.Contains(t, "intermediate") {
		return 2
	}
	if strings.Contains(t, "advanced") {
		return 1
	}
	return 2
}

// JDPriority bands how often skill appears among job-description entities.
func JDPriority(skill string, jdEntities []string) int {
	skill = strings.ToLower(skill)
	count := 0
	for _, e := range jdEntities {
		if strings.ToLower(e) == skill {
			count++
		}
	}
	switch {
	case count >= 3:
		return 3
	case count == 2:
		return 2
	case count == 1:
		return 1
	}
	return 0
}

func MissingBoost(skill string, missing []string) int {
	skill = strings.ToLower(skill)
	for _, m := range missing {
		if m == skill {
			return 3
		}
	}
	return 0
}

func Score(skill string, c Candidate, jdEntities, missing []string) float64 {
	s := float64(InferLevel(c.Title) + JDPriority(skill, jdEntities) + MissingBoost(skill, missing))
	if c.Popularity != nil {
		s += *c.Popularity
	}
	return s
}

// Rank orders candidates by descending score, keeping insertion order on
// ties, and returns at most TopK.
func Rank(skill string, cands []Candidate, jdEntities, missing []string) []Candidate {
	type scored struct {
		score float64
		c     Candidate
	}
	items := make([]scored, 0, len(cands))
	for _, c := range cands {
		items = append(items, scored{score: Score(skill, c, jdEntities, missing), c: c})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	n := len(items)
	if n > TopK {
		n = TopK
	}
	out := make([]Candidate, 0, n)
	for _, it := range items[:n] {
		out = append(out, it.c)
	}
	return out
}
