package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"skillgap/internal/database"
	"skillgap/internal/domain/gap"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type GapSnapshotRepository interface {
	Create(ctx context.Context, userID uuid.UUID, missing []string) (gap.Snapshot, error)
	Latest(ctx context.Context, userID uuid.UUID) (gap.Snapshot, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]gap.Snapshot, error)
}

type PostgresGapSnapshotRepository struct {
	db database.DB
}

func NewPostgresGapSnapshotRepository(db database.DB) *PostgresGapSnapshotRepository {
	return &PostgresGapSnapshotRepository{db: db}
}

func (r *PostgresGapSnapshotRepository) Create(ctx context.Context, userID uuid.UUID, missing []string) (gap.Snapshot, error) {
	if missing == nil {
		missing = []string{}
	}
	payload, err := json.Marshal(missing)
	if err != nil {
		return gap.Snapshot{}, err
	}

	s := gap.Snapshot{UserID: userID, MissingEntities: missing}
	row := r.db.QueryRow(ctx,
		`INSERT INTO gap_snapshots (user_id, missing_entities)
		 VALUES ($1, $2::jsonb)
		 RETURNING id, created_at`,
		userID, string(payload),
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return gap.Snapshot{}, ErrUserNotFound
		}
		return gap.Snapshot{}, err
	}
	return s, nil
}

func (r *PostgresGapSnapshotRepository) Latest(ctx context.Context, userID uuid.UUID) (gap.Snapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, missing_entities, created_at
		 FROM gap_snapshots
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)
	s, err := scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return gap.Snapshot{}, ErrGapSnapshotNotFound
		}
		return gap.Snapshot{}, err
	}
	return s, nil
}

func (r *PostgresGapSnapshotRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]gap.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, missing_entities, created_at
		 FROM gap_snapshots
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]gap.Snapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSnapshot(row database.Row) (gap.Snapshot, error) {
	var (
		s   gap.Snapshot
		raw []byte
	)
	if err := row.Scan(&s.ID, &s.UserID, &raw, &s.CreatedAt); err != nil {
		return gap.Snapshot{}, err
	}
	s.MissingEntities = []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.MissingEntities); err != nil {
			return gap.Snapshot{}, err
		}
	}
	return s, nil
}
