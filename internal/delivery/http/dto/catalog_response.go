package dto

import (
	"skillgap/internal/catalog"
	"skillgap/internal/domain/course"
	"skillgap/internal/recommend"

	"github.com/google/uuid"
)

type CourseResponse struct {
	URL          string   `json:"url"`
	CourseName   string   `json:"course_name"`
	Provider     string   `json:"provider"`
	Organization *string  `json:"organization"`
	Type         *string  `json:"type"`
	Level        *string  `json:"level"`
	Subject      *string  `json:"subject"`
	Duration     *float64 `json:"duration"`
	Rating       *float64 `json:"rating"`
	NumReviews   *int     `json:"nu_reviews"`
	Enrollments  *int     `json:"enrollments"`
	Skills       []string `json:"skills"`
	Description  *string  `json:"description"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return CourseResponse{
		URL:          c.URL,
		CourseName:   c.Name,
		Provider:     c.Provider,
		Organization: c.Organization,
		Type:         c.Type,
		Level:        c.Level,
		Subject:      c.Subject,
		Duration:     c.Duration,
		Rating:       c.Rating,
		NumReviews:   c.NumReviews,
		Enrollments:  c.Enrollments,
		Skills:       skills,
		Description:  c.Description,
	}
}

type CatalogSearchResponse struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []CourseResponse `json:"results"`
}

type CatalogImportResponse struct {
	Mode  string        `json:"mode"`
	Stats catalog.Stats `json:"stats"`
}

type RecommendationResponse struct {
	UserID             uuid.UUID                        `json:"user_id"`
	Source             string                           `json:"source"`
	MissingEntities    []string                         `json:"missing_entities"`
	Recommendations    map[string][]recommend.Candidate `json:"recommendations"`
	TotalSkillsCovered int                              `json:"total_skills_covered"`
}
