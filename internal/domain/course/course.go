package course

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID
	URL          string
	Name         string
	Provider     string
	Organization *string
	Type         *string
	Level        *string
	Subject      *string
	Duration     *float64
	Rating       *float64
	NumReviews   *int
	Enrollments  *int
	Description  *string
	Skills       []string
	HasRating    *int
	HasSubject   *int
	HasNoEnrol   *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
