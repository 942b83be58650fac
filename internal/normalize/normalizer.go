// Package normalize maps raw entity strings to canonical skill labels by
// trying a fixed sequence of strategies.
package normalize

import (
	"context"
	"strings"

	"skillgap/internal/domain/normalised"
	"skillgap/internal/taxonomy"
)

type Match struct {
	Original   string            `json:"original"`
	Normalised string            `json:"normalised"`
	URI        *string           `json:"uri"`
	Source     normalised.Source `json:"source"`
	Type       string            `json:"type"`
}

// Strategy resolves a raw entity or reports that it has no answer.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, original string) (Match, bool)
}

type Normalizer struct {
	strategies []Strategy
}

// New builds a normalizer that tries strategies in order and falls back to
// the raw string.
func New(strategies ...Strategy) *Normalizer {
	return &Normalizer{strategies: strategies}
}

// NewDefault wires manual overrides followed by the taxonomy search.
func NewDefault(searcher taxonomy.Searcher) *Normalizer {
	return New(NewManualOverrides(DefaultOverrides()), NewTaxonomyStrategy(searcher))
}

func (n *Normalizer) Normalise(ctx context.Context, original string) Match {
	for _, s := range n.strategies {
		if m, ok := s.Resolve(ctx, original); ok {
			return m
		}
	}
	return Raw(original)
}

// Raw is the fallback match: the input unchanged with no URI.
func Raw(original string) Match {
	return Match{
		Original:   original,
		Normalised: original,
		Source:     normalised.SourceRaw,
		Type:       normalised.TypeUnknown,
	}
}

type Override struct {
	Label string
	URI   *string
}

func DefaultOverrides() map[string]Override {
	return map[string]Override{
		"rust":       {Label: "Rust"},
		"go":         {Label: "Go"},
		"excel":      {Label: "Excel"},
		"rest":       {Label: "REST API"},
		"stacks":     {Label: "technology stacks"},
		"leadership": {Label: "leadership"},
	}
}

// ManualOverrides pins labels for short or ambiguous terms that a general
// search resolves badly.
type ManualOverrides struct {
	table map[string]Override
}

func NewManualOverrides(table map[string]Override) ManualOverrides {
	t := make(map[string]Override, len(table))
	for k, v := range table {
		t[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return ManualOverrides{table: t}
}

func (ManualOverrides) Name() string { return "manual" }

func (m ManualOverrides) Resolve(_ context.Context, original string) (Match, bool) {
	o, ok := m.table[strings.ToLower(strings.TrimSpace(original))]
	if !ok {
		return Match{}, false
	}
	return Match{
		Original:   original,
		Normalised: o.Label,
		URI:        o.URI,
		Source:     normalised.SourceManual,
		Type:       normalised.TypeSkill,
	}, true
}

type TaxonomyStrategy struct {
	searcher taxonomy.Searcher
}

func NewTaxonomyStrategy(searcher taxonomy.Searcher) TaxonomyStrategy {
	return TaxonomyStrategy{searcher: searcher}
}

func (TaxonomyStrategy) Name() string { return "taxonomy" }

func (t TaxonomyStrategy) Resolve(ctx context.Context, original string) (Match, bool) {
	if t.searcher == nil {
		return Match{}, false
	}
	res, ok := t.searcher.Search(ctx, strings.ToLower(strings.TrimSpace(original)))
	if !ok || res.Label == "" {
		return Match{}, false
	}
	var uri *string
	if res.URI != "" {
		u := res.URI
		uri = &u
	}
	return Match{
		Original:   original,
		Normalised: res.Label,
		URI:        uri,
		Source:     normalised.SourceExternal,
		Type:       normalised.TypeSkill,
	}, true
}

// MergeUnique concatenates lists and drops case-insensitive duplicates,
// keeping the first-seen spelling.
func MergeUnique(lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, l := range lists {
		for _, s := range l {
			k := strings.ToLower(strings.TrimSpace(s))
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
