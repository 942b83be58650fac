// Package recommend selects and ranks courses for missing skills.
package recommend

import (
	"context"

	"skillgap/internal/domain/course"
)

// Candidate is a course offered for a skill. Catalog rows fill the detail
// fields; static entries carry only title, url, provider and popularity.
type Candidate struct {
	URL          string   `json:"url"`
	Title        string   `json:"course_name"`
	Provider     string   `json:"provider"`
	Organization *string  `json:"organization,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Level        *string  `json:"level,omitempty"`
	Subject      *string  `json:"subject,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	NumReviews   *int     `json:"nu_reviews,omitempty"`
	Enrollments  *int     `json:"enrollments,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Popularity   *float64 `json:"popularity,omitempty"`
}

func FromCourse(c course.Course) Candidate {
	return Candidate{
		URL:          c.URL,
		Title:        c.Name,
		Provider:     c.Provider,
		Organization: c.Organization,
		Type:         c.Type,
		Level:        c.Level,
		Subject:      c.Subject,
		Duration:     c.Duration,
		Rating:       c.Rating,
		NumReviews:   c.NumReviews,
		Enrollments:  c.Enrollments,
		Skills:       c.Skills,
	}
}

// Source produces candidate courses for a single skill.
type Source interface {
	Name() string
	Candidates(ctx context.Context, skill string, limit int) ([]Candidate, error)
}

// CourseFinder is the catalog lookup behind CatalogSource.
type CourseFinder interface {
	FindBySkill(ctx context.Context, skill string, limit int) ([]course.Course, error)
}

type CatalogSource struct {
	finder CourseFinder
}

func NewCatalogSource(finder CourseFinder) *CatalogSource {
	return &CatalogSource{finder: finder}
}

func (*CatalogSource) Name() string { return "catalog" }

func (s *CatalogSource) Candidates(ctx context.Context, skill string, limit int) ([]Candidate, error) {
	rows, err := s.finder.FindBySkill(ctx, skill, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromCourse(r))
	}
	return out, nil
}
