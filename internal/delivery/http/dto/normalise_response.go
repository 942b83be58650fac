package dto

import (
	"time"

	"skillgap/internal/domain/normalised"
	"skillgap/internal/normalize"

	"github.com/google/uuid"
)

type NormaliseResponse struct {
	UserID             uuid.UUID         `json:"user_id"`
	NormalisedEntities []normalize.Match `json:"normalised_entities"`
	Count              int               `json:"count"`
}

type NormalisedEntityResponse struct {
	ID         uuid.UUID `json:"id"`
	Original   string    `json:"original"`
	Normalised string    `json:"normalised"`
	URI        *string   `json:"uri"`
	Source     string    `json:"source"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

type NormalisedListResponse struct {
	UserID             uuid.UUID                  `json:"user_id"`
	NormalisedEntities []NormalisedEntityResponse `json:"normalised_entities"`
	Count              int                        `json:"count"`
}

func NewNormalisedListResponse(userID uuid.UUID, items []normalised.Entity) NormalisedListResponse {
	out := make([]NormalisedEntityResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NormalisedEntityResponse{
			ID:         it.ID,
			Original:   it.Original,
			Normalised: it.Normalised,
			URI:        it.URI,
			Source:     string(it.Source),
			Type:       it.Type,
			CreatedAt:  it.CreatedAt,
		})
	}
	return NormalisedListResponse{UserID: userID, NormalisedEntities: out, Count: len(out)}
}
