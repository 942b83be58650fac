package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"skillgap/internal/database"
	"skillgap/internal/domain/entity"

	"github.com/google/uuid"
)

type fakeDB struct {
	execs      []string
	execArgs   [][]any
	failOn     string
	committed  bool
	rolledBack bool
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.execs = append(f.execs, query)
	f.execArgs = append(f.execArgs, args)
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return 0, errors.New("boom")
	}
	if len(args) > 1 {
		if names, ok := args[len(args)-2].([]string); ok {
			return int64(len(names)), nil
		}
	}
	return 0, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error { return nil }
func (f *fakeDB) SQLDB() *sql.DB { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rolledBack = true
	return nil
}

func TestCVReplaceForUser_DeletesThenInsertsInOneTx(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresCVEntityRepository(db)

	n, err := repo.ReplaceForUser(context.Background(), uuid.New(), []entity.Entity{
		{Text: "python", Type: entity.TypeTechnical},
		{Text: "  ", Type: entity.TypeTechnical},
		{Text: "teamwork", Type: entity.TypeSoft},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 saved, got %d", n)
	}
	if len(db.execs) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(db.execs))
	}
	if !strings.HasPrefix(db.execs[0], "DELETE FROM cv_entities") {
		t.Fatalf("expected delete first, got %q", db.execs[0])
	}
	if !db.committed || db.rolledBack {
		t.Fatalf("expected commit without rollback")
	}
	types := db.execArgs[1][2].([]string)
	if types[0] != "technical" || types[1] != "soft" {
		t.Fatalf("unexpected types: %v", types)
	}
}

func TestCVReplaceForUser_EmptyOnlyDeletes(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresCVEntityRepository(db)

	n, err := repo.ReplaceForUser(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || len(db.execs) != 1 {
		t.Fatalf("expected only the delete, got n=%d execs=%d", n, len(db.execs))
	}
}

func TestJDReplaceAll_RollsBackOnInsertFailure(t *testing.T) {
	db := &fakeDB{failOn: "INSERT INTO jd_entities"}
	repo := NewPostgresJDEntityRepository(db)

	_, err := repo.ReplaceAll(context.Background(), []entity.Entity{{Text: "docker", Type: entity.TypeTechnical}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if db.committed || !db.rolledBack {
		t.Fatalf("expected rollback, committed=%v rolledBack=%v", db.committed, db.rolledBack)
	}
}

func TestJDAppend_SkipsEmptyInput(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJDEntityRepository(db)

	n, err := repo.Append(context.Background(), []entity.Entity{{Text: ""}})
	if err != nil || n != 0 {
		t.Fatalf("expected no-op, got n=%d err=%v", n, err)
	}
	if len(db.execs) != 0 {
		t.Fatalf("expected no statements, got %d", len(db.execs))
	}
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"docker":   "%docker%",
		"100%":     `%100\%%`,
		"snake_id": `%snake\_id%`,
		`a\b`:      `%a\\b%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	if got := clampLimit(0, DefaultSearchLimit, MaxSearchLimit); got != DefaultSearchLimit {
		t.Fatalf("expected default, got %d", got)
	}
	if got := clampLimit(500, DefaultSearchLimit, MaxSearchLimit); got != MaxSearchLimit {
		t.Fatalf("expected max, got %d", got)
	}
	if got := clampLimit(7, DefaultSearchLimit, MaxSearchLimit); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
