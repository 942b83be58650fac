package repository

import (
	"context"

	"skillgap/internal/database"
	"skillgap/internal/domain/normalised"

	"github.com/google/uuid"
)

type NormalisedEntityRepository interface {
	// ReplaceForUser deletes the user's stored mappings and inserts items in
	// one transaction.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, items []normalised.Entity) ([]normalised.Entity, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]normalised.Entity, error)
}

type PostgresNormalisedEntityRepository struct {
	db database.DB
}

func NewPostgresNormalisedEntityRepository(db database.DB) *PostgresNormalisedEntityRepository {
	return &PostgresNormalisedEntityRepository{db: db}
}

func (r *PostgresNormalisedEntityRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, items []normalised.Entity) ([]normalised.Entity, error) {
	originals := make([]string, len(items))
	labels := make([]string, len(items))
	uris := make([]*string, len(items))
	sources := make([]string, len(items))
	types := make([]string, len(items))
	for i, it := range items {
		originals[i] = it.Original
		labels[i] = it.Normalised
		uris[i] = it.URI
		sources[i] = string(it.Source)
		types[i] = it.Type
	}

	out := make([]normalised.Entity, 0, len(items))
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM normalised_entities WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		rows, err := tx.Query(ctx,
			`INSERT INTO normalised_entities (user_id, original, normalised, uri, source, entity_type)
			 SELECT $1, u.original, u.normalised, u.uri, u.source, u.entity_type
			 FROM unnest($2::text[], $3::text[], $4::text[], $5::text[], $6::text[])
			      WITH ORDINALITY AS u(original, normalised, uri, source, entity_type, ord)
			 ORDER BY u.ord
			 RETURNING id, user_id, original, normalised, uri, source, entity_type, created_at`,
			userID, originals, labels, uris, sources, types,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanNormalised(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *PostgresNormalisedEntityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]normalised.Entity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, original, normalised, uri, source, entity_type, created_at
		 FROM normalised_entities
		 WHERE user_id = $1
		 ORDER BY original ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]normalised.Entity, 0)
	for rows.Next() {
		e, err := scanNormalised(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanNormalised(row database.Row) (normalised.Entity, error) {
	var (
		e      normalised.Entity
		source string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Original, &e.Normalised, &e.URI, &source, &e.Type, &e.CreatedAt); err != nil {
		return normalised.Entity{}, err
	}
	e.Source = normalised.Source(source)
	return e, nil
}
