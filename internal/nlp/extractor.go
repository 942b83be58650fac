// Package nlp finds skill, qualification and experience phrases in cleaned
// document text by keyword and pattern matching.
package nlp

import (
	"regexp"
	"strings"

	"skillgap/internal/domain/entity"
)

type LookupEntity struct {
	Original       string      `json:"original"`
	LookupTerm     string      `json:"lookup_term"`
	Type           entity.Type `json:"type"`
	ReadyForLookup bool        `json:"ready_for_lookup"`
}

type Extraction struct {
	Raw            []entity.Entity `json:"raw_entities"`
	Unique         []entity.Entity `json:"unique_entities"`
	ReadyForLookup []LookupEntity  `json:"ready_for_lookup_entities"`
}

type Extractor struct {
	vocab Vocabulary
}

func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// Preprocess lower-cases text and collapses whitespace runs.
func Preprocess(text string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(strings.ToLower(text), " "))
}

// Extract matches tokens against the keyword sets and the experience
// patterns against the whole preprocessed text. Matching is per token, so a
// multi-word keyword never matches.
func (e *Extractor) Extract(text string) Extraction {
	clean := Preprocess(text)

	raw := make([]entity.Entity, 0)
	for _, tok := range Tokenize(clean) {
		for _, typ := range e.vocab.Match(tok) {
			raw = append(raw, entity.Entity{Text: tok, Type: typ})
		}
	}
	for _, re := range e.vocab.experience {
		for _, m := range re.FindAllString(clean, -1) {
			raw = append(raw, entity.Entity{Text: m, Type: entity.TypeExperience})
		}
	}

	unique := Unique(raw)
	ready := make([]LookupEntity, 0, len(unique))
	for _, u := range unique {
		ready = append(ready, LookupEntity{
			Original:       u.Text,
			LookupTerm:     u.Text,
			Type:           u.Type,
			ReadyForLookup: true,
		})
	}

	return Extraction{Raw: raw, Unique: unique, ReadyForLookup: ready}
}

// Unique keeps the first entity seen for each exact text.
func Unique(in []entity.Entity) []entity.Entity {
	seen := make(map[string]struct{}, len(in))
	out := make([]entity.Entity, 0, len(in))
	for _, e := range in {
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		out = append(out, e)
	}
	return out
}
