package dto

import (
	"time"

	"skillgap/internal/domain/gap"

	"github.com/google/uuid"
)

// GapResponse omits snapshot_id and created_at when no snapshot exists yet.
type GapResponse struct {
	UserID          uuid.UUID  `json:"user_id"`
	MissingEntities []string   `json:"missing_entities"`
	Count           int        `json:"count"`
	SnapshotID      *uuid.UUID `json:"snapshot_id,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

func NewGapResponse(userID uuid.UUID, s gap.Snapshot, persisted bool) GapResponse {
	missing := s.MissingEntities
	if missing == nil {
		missing = []string{}
	}
	res := GapResponse{UserID: userID, MissingEntities: missing, Count: len(missing)}
	if persisted {
		id, at := s.ID, s.CreatedAt
		res.SnapshotID = &id
		res.CreatedAt = &at
	}
	return res
}

type GapHistoryResponse struct {
	UserID    uuid.UUID     `json:"user_id"`
	Count     int           `json:"count"`
	Snapshots []GapResponse `json:"snapshots"`
}
