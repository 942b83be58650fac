package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestGapUsecase_ComputeGap_UnknownUser(t *testing.T) {
	snaps := &mockSnapshotRepo{}
	uc := NewGapUsecase(newUserRepoWith(), &mockCVRepo{}, &mockJDRepo{}, snaps, nil)

	_, err := uc.ComputeGap(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(snaps.snaps) != 0 {
		t.Fatalf("expected no snapshot, got %d", len(snaps.snaps))
	}
}

func TestGapUsecase_ComputeGap_PersistsSnapshot(t *testing.T) {
	userID := uuid.New()
	cv := &mockCVRepo{names: map[uuid.UUID][]string{userID: {"Python", "SQL"}}}
	jd := &mockJDRepo{names: []string{"Python", "SQL", "Docker"}}
	snaps := &mockSnapshotRepo{}
	uc := NewGapUsecase(newUserRepoWith(userID), cv, jd, snaps, nil)

	snap, err := uc.ComputeGap(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(snap.MissingEntities, []string{"docker"}) {
		t.Fatalf("unexpected missing: %v", snap.MissingEntities)
	}
	if snap.ID == uuid.Nil || len(snaps.snaps) != 1 {
		t.Fatalf("expected a persisted snapshot")
	}

	// a second run adds a snapshot rather than rewriting the first
	if _, err := uc.ComputeGap(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(snaps.snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps.snaps))
	}
}

func TestGapUsecase_ComputeGap_RepoFailureIsInternal(t *testing.T) {
	userID := uuid.New()
	uc := NewGapUsecase(newUserRepoWith(userID), &mockCVRepo{err: errBoom}, &mockJDRepo{}, &mockSnapshotRepo{}, nil)

	_, err := uc.ComputeGap(context.Background(), userID)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGapUsecase_LatestGap(t *testing.T) {
	userID := uuid.New()
	snaps := &mockSnapshotRepo{}
	uc := NewGapUsecase(newUserRepoWith(userID), &mockCVRepo{}, &mockJDRepo{}, snaps, nil)

	snap, found, err := uc.LatestGap(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if found {
		t.Fatalf("expected no snapshot")
	}
	if snap.MissingEntities == nil || len(snap.MissingEntities) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", snap.MissingEntities)
	}

	_, _ = snaps.Create(context.Background(), userID, []string{"docker"})
	_, _ = snaps.Create(context.Background(), userID, []string{"aws", "docker"})

	snap, found, err = uc.LatestGap(context.Background(), userID)
	if err != nil || !found {
		t.Fatalf("expected latest snapshot, found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(snap.MissingEntities, []string{"aws", "docker"}) {
		t.Fatalf("expected newest snapshot, got %v", snap.MissingEntities)
	}

	history, err := uc.GapHistory(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(history) != 2 || history[0].MissingEntities[0] != "aws" {
		t.Fatalf("expected newest first, got %+v", history)
	}
}
