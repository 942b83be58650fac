package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"skillgap/internal/domain/entity"
	"skillgap/internal/domain/user"
	"skillgap/internal/nlp"
	"skillgap/internal/repository"
	"skillgap/internal/scraper"

	"github.com/google/uuid"
)

type JDSaveMode string

const (
	JDSaveAppend  JDSaveMode = "append"
	JDSaveReplace JDSaveMode = "replace"
)

// ParseJDSaveMode defaults to append when s is blank.
func ParseJDSaveMode(s string) (JDSaveMode, error) {
	switch JDSaveMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", JDSaveAppend:
		return JDSaveAppend, nil
	case JDSaveReplace:
		return JDSaveReplace, nil
	}
	return "", fmt.Errorf("%w: mode must be append or replace", ErrInvalidInput)
}

type SaveResult struct {
	Saved    int
	Entities []entity.Entity
}

// PageFetcher returns the readable text of a job posting.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type EntityUsecase interface {
	SaveCVEntities(ctx context.Context, userID uuid.UUID, up Upload) (SaveResult, error)
	SaveJDEntities(ctx context.Context, up Upload, mode JDSaveMode) (SaveResult, error)
	SaveJDEntitiesFromURL(ctx context.Context, rawURL string, mode JDSaveMode) (SaveResult, error)
}

type Entities struct {
	docs      DocumentUsecase
	extractor *nlp.Extractor
	users     user.Repository
	cv        repository.CVEntityRepository
	jd        repository.JDEntityRepository
	pages     PageFetcher
	logger    *log.Logger
}

func NewEntityUsecase(
	docs DocumentUsecase,
	extractor *nlp.Extractor,
	users user.Repository,
	cv repository.CVEntityRepository,
	jd repository.JDEntityRepository,
	pages PageFetcher,
	logger *log.Logger,
) *Entities {
	if logger == nil {
		logger = log.Default()
	}
	return &Entities{docs: docs, extractor: extractor, users: users, cv: cv, jd: jd, pages: pages, logger: logger}
}

// SaveCVEntities replaces the user's CV entities with the unique entities of
// the uploaded document.
func (u *Entities) SaveCVEntities(ctx context.Context, userID uuid.UUID, up Upload) (SaveResult, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return SaveResult{}, ErrInternal
	}
	if !exists {
		return SaveResult{}, ErrUserNotFound
	}

	ext, err := u.docs.ExtractEntities(up)
	if err != nil {
		return SaveResult{}, err
	}

	saved, err := u.cv.ReplaceForUser(ctx, userID, ext.Unique)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SaveResult{}, ErrUserNotFound
		}
		u.logger.Printf("entities=cv status=failed user_id=%s err=%v", userID, err)
		return SaveResult{}, ErrInternal
	}
	return SaveResult{Saved: saved, Entities: ext.Unique}, nil
}

func (u *Entities) SaveJDEntities(ctx context.Context, up Upload, mode JDSaveMode) (SaveResult, error) {
	ext, err := u.docs.ExtractEntities(up)
	if err != nil {
		return SaveResult{}, err
	}
	return u.storeJD(ctx, ext.Unique, mode)
}

// SaveJDEntitiesFromURL scrapes a job posting and stores its entities like an
// uploaded job description.
func (u *Entities) SaveJDEntitiesFromURL(ctx context.Context, rawURL string, mode JDSaveMode) (SaveResult, error) {
	if u.pages == nil {
		return SaveResult{}, ErrPageFetchFailed
	}
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return SaveResult{}, ErrInvalidInput
	}

	text, err := u.pages.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, scraper.ErrInvalidURL) {
			return SaveResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		u.logger.Printf("entities=jd_url status=fetch_failed url=%q err=%v", rawURL, err)
		return SaveResult{}, ErrPageFetchFailed
	}

	ext := u.extractor.Extract(text)
	return u.storeJD(ctx, ext.Unique, mode)
}

func (u *Entities) storeJD(ctx context.Context, entities []entity.Entity, mode JDSaveMode) (SaveResult, error) {
	var (
		saved int
		err   error
	)
	if mode == JDSaveReplace {
		saved, err = u.jd.ReplaceAll(ctx, entities)
	} else {
		saved, err = u.jd.Append(ctx, entities)
	}
	if err != nil {
		u.logger.Printf("entities=jd status=failed mode=%s err=%v", mode, err)
		return SaveResult{}, ErrInternal
	}
	return SaveResult{Saved: saved, Entities: entities}, nil
}
