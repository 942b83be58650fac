package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"skillgap/internal/domain/entity"
)

// Vocabulary is the immutable keyword configuration used by an Extractor.
// Build it once at startup and share it.
type Vocabulary struct {
	technical     map[string]struct{}
	soft          map[string]struct{}
	qualification map[string]struct{}
	experience    []*regexp.Regexp
}

var (
	defaultTechnical = []string{
		"python", "java", "javascript", "c#", "c++", "sql", "html", "css",
		"react", "node", "docker", "kubernetes", "linux", "git", "aws",
		"azure", "gcp", "tensorflow", "pytorch", "postgresql", "mongodb",
	}
	defaultQualification = []string{
		"degree", "bachelor", "masters", "phd", "diploma", "certificate",
		"certification", "msc", "bsc",
	}
	// Multi-word entries never match a single token; kept so the list stays
	// the single source of soft-skill vocabulary.
	defaultSoft = []string{
		"communication", "teamwork", "presentation", "leadership",
		"time management", "problem solving", "critical thinking",
	}
	defaultExperience = []string{
		`\b[0-9]+ ?\+? years? experience\b`,
		`\bexperience with\b`,
		`\bworked on\b`,
		`\bfamiliar with\b`,
	}
)

// NewVocabulary lower-cases every keyword and compiles the experience
// patterns.
func NewVocabulary(technical, soft, qualification, experience []string) (Vocabulary, error) {
	v := Vocabulary{
		technical:     toSet(technical),
		soft:          toSet(soft),
		qualification: toSet(qualification),
		experience:    make([]*regexp.Regexp, 0, len(experience)),
	}
	for _, p := range experience {
		re, err := regexp.Compile(p)
		if err != nil {
			return Vocabulary{}, fmt.Errorf("compile experience pattern %q: %w", p, err)
		}
		v.experience = append(v.experience, re)
	}
	return v, nil
}

func DefaultVocabulary() Vocabulary {
	v, err := NewVocabulary(defaultTechnical, defaultSoft, defaultQualification, defaultExperience)
	if err != nil {
		panic(err)
	}
	return v
}

// Match reports every keyword set containing token, in technical, soft,
// qualification order.
func (v Vocabulary) Match(token string) []entity.Type {
	var out []entity.Type
	if _, ok := v.technical[token]; ok {
		out = append(out, entity.TypeTechnical)
	}
	if _, ok := v.soft[token]; ok {
		out = append(out, entity.TypeSoft)
	}
	if _, ok := v.qualification[token]; ok {
		out = append(out, entity.TypeQualification)
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			m[w] = struct{}{}
		}
	}
	return m
}
