package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap/internal/domain/entity"
)

func TestExtract_DedupesByText(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	got := ex.Extract("Python developer. I love PYTHON and SQL.")

	assert.Equal(t, []entity.Entity{
		{Text: "python", Type: entity.TypeTechnical},
		{Text: "python", Type: entity.TypeTechnical},
		{Text: "sql", Type: entity.TypeTechnical},
	}, got.Raw)
	assert.Equal(t, []entity.Entity{
		{Text: "python", Type: entity.TypeTechnical},
		{Text: "sql", Type: entity.TypeTechnical},
	}, got.Unique)
}

func TestExtract_AllCategories(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	text := "BSc in Computer Science.\nStrong communication and leadership.\n" +
		"5+ years experience with Docker, Kubernetes and C++."
	got := ex.Extract(text)

	assert.Equal(t, []entity.Entity{
		{Text: "bsc", Type: entity.TypeQualification},
		{Text: "communication", Type: entity.TypeSoft},
		{Text: "leadership", Type: entity.TypeSoft},
		{Text: "docker", Type: entity.TypeTechnical},
		{Text: "kubernetes", Type: entity.TypeTechnical},
		{Text: "c++", Type: entity.TypeTechnical},
		{Text: "5+ years experience", Type: entity.TypeExperience},
		{Text: "experience with", Type: entity.TypeExperience},
	}, got.Unique)
}

func TestExtract_ReadyForLookupMirrorsUnique(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	got := ex.Extract("Worked on React and Node")

	require.Len(t, got.ReadyForLookup, len(got.Unique))
	for i, u := range got.Unique {
		r := got.ReadyForLookup[i]
		assert.Equal(t, u.Text, r.Original)
		assert.Equal(t, u.Text, r.LookupTerm)
		assert.Equal(t, u.Type, r.Type)
		assert.True(t, r.ReadyForLookup)
	}
	assert.Contains(t, got.Unique, entity.Entity{Text: "worked on", Type: entity.TypeExperience})
}

// Keyword matching is per token, so multi-word keywords from the soft-skill
// list are never found even when the phrase is present verbatim.
func TestExtract_MultiWordKeywordsDoNotMatch(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	got := ex.Extract("Excellent time management and problem solving, plus critical thinking.")

	assert.Empty(t, got.Raw)
	assert.Empty(t, got.Unique)
}

func TestExtract_EmptyText(t *testing.T) {
	got := NewExtractor(DefaultVocabulary()).Extract("")
	assert.Empty(t, got.Raw)
	assert.Empty(t, got.Unique)
	assert.Empty(t, got.ReadyForLookup)
}

func TestExtract_TokenMatchingMultipleSets(t *testing.T) {
	vocab, err := NewVocabulary([]string{"lead"}, []string{"Lead"}, nil, nil)
	require.NoError(t, err)

	got := NewExtractor(vocab).Extract("lead")

	assert.Equal(t, []entity.Entity{
		{Text: "lead", Type: entity.TypeTechnical},
		{Text: "lead", Type: entity.TypeSoft},
	}, got.Raw)
	assert.Equal(t, []entity.Entity{{Text: "lead", Type: entity.TypeTechnical}}, got.Unique)
}

func TestNewVocabulary_BadPattern(t *testing.T) {
	_, err := NewVocabulary(nil, nil, nil, []string{"("})
	require.Error(t, err)
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "python and sql", Preprocess("  Python \n\t and   SQL "))
}

func TestExtract_KeywordsInsidePunctuation(t *testing.T) {
	ex := NewExtractor(DefaultVocabulary())

	cases := []struct {
		in   string
		want []string
	}{
		{in: "—python— «sql»", want: []string{"python", "sql"}},
		{in: "python-based tools, e.g. git", want: []string{"python", "git"}},
		{in: "...python... 'sql'", want: []string{"python", "sql"}},
		{in: "Docker’s runtime", want: []string{"docker"}},
	}
	for _, tc := range cases {
		got := ex.Extract(tc.in)
		texts := make([]string, 0, len(got.Unique))
		for _, e := range got.Unique {
			texts = append(texts, e.Text)
		}
		assert.Equal(t, tc.want, texts, "input %q", tc.in)
	}
}
