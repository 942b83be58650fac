package usecase

import (
	"errors"
	"strings"

	"skillgap/internal/document"
	"skillgap/internal/nlp"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type DocumentUsecase interface {
	ExtractText(up Upload) (string, error)
	ExtractEntities(up Upload) (nlp.Extraction, error)
}

type Document struct {
	extractor *nlp.Extractor
}

func NewDocumentUsecase(extractor *nlp.Extractor) *Document {
	return &Document{extractor: extractor}
}

func (u *Document) ExtractText(up Upload) (string, error) {
	if strings.TrimSpace(up.Filename) == "" && strings.TrimSpace(up.ContentType) == "" {
		return "", ErrInvalidInput
	}

	text, err := document.Extract(up.Filename, up.ContentType, up.Data)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrUnsupportedFileType):
			return "", ErrUnsupportedFileType
		case errors.Is(err, document.ErrExtractionFailed):
			return "", ErrUnreadableDocument
		}
		return "", ErrInternal
	}
	return text, nil
}

func (u *Document) ExtractEntities(up Upload) (nlp.Extraction, error) {
	text, err := u.ExtractText(up)
	if err != nil {
		return nlp.Extraction{}, err
	}
	return u.extractor.Extract(text), nil
}
