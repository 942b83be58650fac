package dto

import (
	"skillgap/internal/domain/entity"
	"skillgap/internal/nlp"
)

type TextResponse struct {
	Filename    string `json:"filename"`
	Filesize    int    `json:"filesize"`
	ContentType string `json:"content_type"`
	Text        string `json:"text"`
}

type EntitiesResponse struct {
	Filename    string         `json:"filename"`
	Filesize    int            `json:"filesize"`
	ContentType string         `json:"content_type"`
	Entities    nlp.Extraction `json:"entities"`
}

type SaveEntitiesResponse struct {
	Saved    int             `json:"saved"`
	Entities []entity.Entity `json:"entities"`
}
