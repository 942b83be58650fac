package usecase

import (
	"context"
	"errors"
	"log"

	"skillgap/internal/domain/normalised"
	"skillgap/internal/domain/user"
	"skillgap/internal/normalize"
	"skillgap/internal/repository"

	"github.com/google/uuid"
)

// EntityNormaliser maps one raw entity to a canonical label.
type EntityNormaliser interface {
	Normalise(ctx context.Context, original string) normalize.Match
}

type NormaliseUsecase interface {
	NormaliseAll(ctx context.Context, userID uuid.UUID) ([]normalize.Match, error)
	ListNormalised(ctx context.Context, userID uuid.UUID) ([]normalised.Entity, error)
}

type Normalise struct {
	users      user.Repository
	cv         repository.CVEntityRepository
	jd         repository.JDEntityRepository
	store      repository.NormalisedEntityRepository
	normaliser EntityNormaliser
	logger     *log.Logger
}

func NewNormaliseUsecase(
	users user.Repository,
	cv repository.CVEntityRepository,
	jd repository.JDEntityRepository,
	store repository.NormalisedEntityRepository,
	normaliser EntityNormaliser,
	logger *log.Logger,
) *Normalise {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalise{users: users, cv: cv, jd: jd, store: store, normaliser: normaliser, logger: logger}
}

// NormaliseAll normalises the union of the user's CV entities and all JD
// entities, then replaces the user's stored mappings with the result.
func (u *Normalise) NormaliseAll(ctx context.Context, userID uuid.UUID) ([]normalize.Match, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	cvNames, err := u.cv.NamesByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	jdNames, err := u.jd.Names(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	names := normalize.MergeUnique(cvNames, jdNames)
	matches := make([]normalize.Match, 0, len(names))
	rows := make([]normalised.Entity, 0, len(names))
	for _, name := range names {
		m := u.normaliser.Normalise(ctx, name)
		matches = append(matches, m)
		rows = append(rows, normalised.Entity{
			UserID:     userID,
			Original:   m.Original,
			Normalised: m.Normalised,
			URI:        m.URI,
			Source:     m.Source,
			Type:       m.Type,
		})
	}

	if _, err := u.store.ReplaceForUser(ctx, userID, rows); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		u.logger.Printf("normalise status=failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return matches, nil
}

func (u *Normalise) ListNormalised(ctx context.Context, userID uuid.UUID) ([]normalised.Entity, error) {
	out, err := u.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
