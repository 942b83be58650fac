package repository

import (
	"context"
	"encoding/json"
	"strings"

	"skillgap/internal/database"
	"skillgap/internal/domain/course"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

type CourseRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
	UpsertBatch(ctx context.Context, courses []course.Course) (inserted int, updated int, err error)
	Upsert(ctx context.Context, c course.Course) (inserted bool, err error)
	Search(ctx context.Context, query string, limit int) ([]course.Course, error)
	FindBySkill(ctx context.Context, skill string, limit int) ([]course.Course, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

const courseColumns = `id, url, course_name, provider, organization, type, level, subject,
	duration, rating, nu_reviews, enrollments, description, skills,
	has_rating, has_subject, has_no_enrol, created_at, updated_at`

// xmax is zero only for a freshly inserted tuple, which tells inserts apart
// from conflict updates.
const upsertCourseSQL = `INSERT INTO courses (
	url, course_name, provider, organization, type, level, subject,
	duration, rating, nu_reviews, enrollments, description, skills,
	has_rating, has_subject, has_no_enrol
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, $14, $15, $16)
ON CONFLICT (url) DO UPDATE SET
	course_name = EXCLUDED.course_name,
	provider = EXCLUDED.provider,
	organization = EXCLUDED.organization,
	type = EXCLUDED.type,
	level = EXCLUDED.level,
	subject = EXCLUDED.subject,
	duration = EXCLUDED.duration,
	rating = EXCLUDED.rating,
	nu_reviews = EXCLUDED.nu_reviews,
	enrollments = EXCLUDED.enrollments,
	description = EXCLUDED.description,
	skills = EXCLUDED.skills,
	has_rating = EXCLUDED.has_rating,
	has_subject = EXCLUDED.has_subject,
	has_no_enrol = EXCLUDED.has_no_enrol,
	updated_at = now()
RETURNING (xmax = 0)`

func (r *PostgresCourseRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM courses`)
}

func (r *PostgresCourseRepository) UpsertBatch(ctx context.Context, courses []course.Course) (int, int, error) {
	var inserted, updated int
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, c := range courses {
			isNew, err := upsertCourse(ctx, tx, c)
			if err != nil {
				return err
			}
			if isNew {
				inserted++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

func (r *PostgresCourseRepository) Upsert(ctx context.Context, c course.Course) (bool, error) {
	return upsertCourse(ctx, r.db, c)
}

func upsertCourse(ctx context.Context, q database.Querier, c course.Course) (bool, error) {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	payload, err := json.Marshal(skills)
	if err != nil {
		return false, err
	}

	var isNew bool
	err = q.QueryRow(ctx, upsertCourseSQL,
		c.URL, c.Name, c.Provider, c.Organization, c.Type, c.Level, c.Subject,
		c.Duration, c.Rating, c.NumReviews, c.Enrollments, c.Description, string(payload),
		c.HasRating, c.HasSubject, c.HasNoEnrol,
	).Scan(&isNew)
	if err != nil {
		return false, err
	}
	return isNew, nil
}

// Search matches query against name, description, provider and organization.
func (r *PostgresCourseRepository) Search(ctx context.Context, query string, limit int) ([]course.Course, error) {
	limit = clampLimit(limit, DefaultSearchLimit, MaxSearchLimit)
	pattern := containsPattern(strings.TrimSpace(query))

	return r.list(ctx,
		`SELECT `+courseColumns+`
		 FROM courses
		 WHERE course_name ILIKE $1 ESCAPE '\'
		    OR description ILIKE $1 ESCAPE '\'
		    OR provider ILIKE $1 ESCAPE '\'
		    OR organization ILIKE $1 ESCAPE '\'
		 ORDER BY rating DESC NULLS LAST, course_name ASC
		 LIMIT $2`,
		pattern, limit,
	)
}

// FindBySkill matches skill against name, description and the serialized
// skills list.
func (r *PostgresCourseRepository) FindBySkill(ctx context.Context, skill string, limit int) ([]course.Course, error) {
	if limit <= 0 {
		return []course.Course{}, nil
	}
	pattern := containsPattern(strings.TrimSpace(skill))

	return r.list(ctx,
		`SELECT `+courseColumns+`
		 FROM courses
		 WHERE course_name ILIKE $1 ESCAPE '\'
		    OR description ILIKE $1 ESCAPE '\'
		    OR skills::text ILIKE $1 ESCAPE '\'
		 ORDER BY rating DESC NULLS LAST, course_name ASC
		 LIMIT $2`,
		pattern, limit,
	)
}

func (r *PostgresCourseRepository) list(ctx context.Context, query string, args ...any) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCourse(row database.Row) (course.Course, error) {
	var (
		c   course.Course
		raw []byte
	)
	err := row.Scan(
		&c.ID, &c.URL, &c.Name, &c.Provider, &c.Organization, &c.Type, &c.Level, &c.Subject,
		&c.Duration, &c.Rating, &c.NumReviews, &c.Enrollments, &c.Description, &raw,
		&c.HasRating, &c.HasSubject, &c.HasNoEnrol, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	c.Skills = []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Skills); err != nil {
			return course.Course{}, err
		}
	}
	return c, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
