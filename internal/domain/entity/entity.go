// Package entity holds the skill-like phrases extracted from CVs and job
// descriptions.
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTechnical     Type = "technical"
	TypeSoft          Type = "soft"
	TypeQualification Type = "qualification"
	TypeExperience    Type = "experience"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTechnical, TypeSoft, TypeQualification, TypeExperience:
		return true
	}
	return false
}

// Entity is one keyword or phrase hit. Text is the matched surface string.
type Entity struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// Record is a persisted entity row. UserID is nil for job-description rows.
type Record struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Type      Type
	CreatedAt time.Time
}
