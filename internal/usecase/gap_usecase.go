package usecase

import (
	"context"
	"errors"
	"log"

	"skillgap/internal/domain/gap"
	"skillgap/internal/domain/user"
	"skillgap/internal/repository"

	"github.com/google/uuid"
)

type GapUsecase interface {
	ComputeGap(ctx context.Context, userID uuid.UUID) (gap.Snapshot, error)
	// LatestGap reports false when the user has never computed a gap.
	LatestGap(ctx context.Context, userID uuid.UUID) (gap.Snapshot, bool, error)
	GapHistory(ctx context.Context, userID uuid.UUID, limit int) ([]gap.Snapshot, error)
}

type Gap struct {
	users     user.Repository
	cv        repository.CVEntityRepository
	jd        repository.JDEntityRepository
	snapshots repository.GapSnapshotRepository
	logger    *log.Logger
}

func NewGapUsecase(
	users user.Repository,
	cv repository.CVEntityRepository,
	jd repository.JDEntityRepository,
	snapshots repository.GapSnapshotRepository,
	logger *log.Logger,
) *Gap {
	if logger == nil {
		logger = log.Default()
	}
	return &Gap{users: users, cv: cv, jd: jd, snapshots: snapshots, logger: logger}
}

// ComputeGap diffs the user's CV entities against every stored JD entity and
// records the result as a new snapshot.
func (u *Gap) ComputeGap(ctx context.Context, userID uuid.UUID) (gap.Snapshot, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return gap.Snapshot{}, ErrInternal
	}
	if !exists {
		return gap.Snapshot{}, ErrUserNotFound
	}

	cvNames, err := u.cv.NamesByUser(ctx, userID)
	if err != nil {
		u.logger.Printf("gap=compute status=failed step=cv user_id=%s err=%v", userID, err)
		return gap.Snapshot{}, ErrInternal
	}
	jdNames, err := u.jd.Names(ctx)
	if err != nil {
		u.logger.Printf("gap=compute status=failed step=jd user_id=%s err=%v", userID, err)
		return gap.Snapshot{}, ErrInternal
	}

	missing := gap.Missing(cvNames, jdNames)
	snap, err := u.snapshots.Create(ctx, userID, missing)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return gap.Snapshot{}, ErrUserNotFound
		}
		u.logger.Printf("gap=compute status=failed step=snapshot user_id=%s err=%v", userID, err)
		return gap.Snapshot{}, ErrInternal
	}
	return snap, nil
}

func (u *Gap) LatestGap(ctx context.Context, userID uuid.UUID) (gap.Snapshot, bool, error) {
	snap, err := u.snapshots.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGapSnapshotNotFound) {
			return gap.Snapshot{UserID: userID, MissingEntities: []string{}}, false, nil
		}
		return gap.Snapshot{}, false, ErrInternal
	}
	return snap, true, nil
}

func (u *Gap) GapHistory(ctx context.Context, userID uuid.UUID, limit int) ([]gap.Snapshot, error) {
	out, err := u.snapshots.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
