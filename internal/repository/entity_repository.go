package repository

import (
	"context"
	"strings"

	"skillgap/internal/database"
	"skillgap/internal/domain/entity"

	"github.com/google/uuid"
)

type CVEntityRepository interface {
	// ReplaceForUser drops the user's previous CV entities and stores the new set.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, entities []entity.Entity) (int, error)
	NamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type JDEntityRepository interface {
	Append(ctx context.Context, entities []entity.Entity) (int, error)
	ReplaceAll(ctx context.Context, entities []entity.Entity) (int, error)
	Names(ctx context.Context) ([]string, error)
}

type PostgresCVEntityRepository struct {
	db database.DB
}

func NewPostgresCVEntityRepository(db database.DB) *PostgresCVEntityRepository {
	return &PostgresCVEntityRepository{db: db}
}

func (r *PostgresCVEntityRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, entities []entity.Entity) (int, error) {
	names, types := entityColumns(entities)

	var saved int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cv_entities WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		n, err := tx.Exec(ctx,
			`INSERT INTO cv_entities (user_id, entity_name, entity_type)
			 SELECT $1, u.name, u.type
			 FROM unnest($2::text[], $3::text[]) AS u(name, type)`,
			userID, names, types,
		)
		if err != nil {
			return err
		}
		saved = n
		return nil
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return int(saved), nil
}

func (r *PostgresCVEntityRepository) NamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return queryNames(ctx, r.db,
		`SELECT entity_name FROM cv_entities WHERE user_id = $1 ORDER BY created_at ASC, entity_name ASC`,
		userID,
	)
}

type PostgresJDEntityRepository struct {
	db database.DB
}

func NewPostgresJDEntityRepository(db database.DB) *PostgresJDEntityRepository {
	return &PostgresJDEntityRepository{db: db}
}

func (r *PostgresJDEntityRepository) Append(ctx context.Context, entities []entity.Entity) (int, error) {
	names, types := entityColumns(entities)
	if len(names) == 0 {
		return 0, nil
	}
	n, err := insertJD(ctx, r.db, names, types)
	return int(n), err
}

func (r *PostgresJDEntityRepository) ReplaceAll(ctx context.Context, entities []entity.Entity) (int, error) {
	names, types := entityColumns(entities)

	var saved int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM jd_entities`); err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		n, err := insertJD(ctx, tx, names, types)
		if err != nil {
			return err
		}
		saved = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(saved), nil
}

func (r *PostgresJDEntityRepository) Names(ctx context.Context) ([]string, error) {
	return queryNames(ctx, r.db, `SELECT entity_name FROM jd_entities ORDER BY created_at ASC, entity_name ASC`)
}

func insertJD(ctx context.Context, q database.Querier, names, types []string) (int64, error) {
	return q.Exec(ctx,
		`INSERT INTO jd_entities (entity_name, entity_type)
		 SELECT u.name, u.type
		 FROM unnest($1::text[], $2::text[]) AS u(name, type)`,
		names, types,
	)
}

// entityColumns splits entities into parallel name/type arrays, skipping blank
// names.
func entityColumns(entities []entity.Entity) ([]string, []string) {
	names := make([]string, 0, len(entities))
	types := make([]string, 0, len(entities))
	for _, e := range entities {
		name := strings.TrimSpace(e.Text)
		if name == "" {
			continue
		}
		names = append(names, name)
		types = append(types, string(e.Type))
	}
	return names, types
}

func queryNames(ctx context.Context, q database.Querier, query string, args ...any) ([]string, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
