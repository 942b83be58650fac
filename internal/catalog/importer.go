// Package catalog ingests course exports into the course store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/gjson"

	"skillgap/internal/domain/course"
)

var (
	ErrMalformedCatalog = errors.New("malformed catalog document: expected {\"courses\": [...]}")
	ErrInvalidMode      = errors.New("invalid import mode")
)

type Mode string

const (
	ModeReplace Mode = "replace"
	ModeUpsert  Mode = "upsert"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReplace:
		return ModeReplace, nil
	case ModeUpsert:
		return ModeUpsert, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

const DefaultBatchSize = 1000

type Stats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// Store persists courses keyed by url.
type Store interface {
	DeleteAll(ctx context.Context) (int64, error)
	// UpsertBatch writes all courses in a single transaction and reports
	// how many rows were new.
	UpsertBatch(ctx context.Context, courses []course.Course) (inserted int, updated int, err error)
	Upsert(ctx context.Context, c course.Course) (inserted bool, err error)
}

type Importer struct {
	store     Store
	batchSize int
	logger    *log.Logger
}

func NewImporter(store Store, batchSize int, logger *log.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{store: store, batchSize: batchSize, logger: logger}
}

// ParseDocument returns the course rows of a {"courses": [...]} export.
func ParseDocument(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedCatalog
	}
	courses := gjson.GetBytes(data, "courses")
	if !courses.IsArray() {
		return nil, ErrMalformedCatalog
	}
	return courses.Array(), nil
}

// RowToCourse maps one export row to a course. It reports false when url,
// course_name or provider is blank.
func RowToCourse(r gjson.Result) (course.Course, bool) {
	url := strings.TrimSpace(r.Get("url").String())
	name := strings.TrimSpace(r.Get("course_name").String())
	provider := strings.TrimSpace(r.Get("provider").String())
	if url == "" || name == "" || provider == "" {
		return course.Course{}, false
	}

	return course.Course{
		URL:          url,
		Name:         name,
		Provider:     provider,
		Organization: CleanBracedSetText(r.Get("organization")),
		Type:         optString(r.Get("type")),
		Level:        optString(r.Get("level")),
		Subject:      CleanBracedSetText(r.Get("subject")),
		Duration:     ToFloat(r.Get("duration")),
		Rating:       ToFloat(r.Get("rating")),
		NumReviews:   ToInt(r.Get("nu_reviews")),
		Enrollments:  ToInt(r.Get("enrollments")),
		Description:  optString(r.Get("description")),
		Skills:       ParseSkills(r.Get("skills")),
		HasRating:    ToInt(r.Get("has_rating")),
		HasSubject:   ToInt(r.Get("has_subject")),
		HasNoEnrol:   ToInt(r.Get("has_no_enrol")),
	}, true
}

// Import parses data and loads it with the given mode.
func (im *Importer) Import(ctx context.Context, data []byte, mode Mode) (Stats, error) {
	rows, err := ParseDocument(data)
	if err != nil {
		return Stats{}, err
	}
	return im.ImportRows(ctx, rows, mode)
}

// ImportRows loads rows batch by batch. A failed batch is retried row by row
// so a single bad record only costs itself; such rows count as skipped.
func (im *Importer) ImportRows(ctx context.Context, rows []gjson.Result, mode Mode) (Stats, error) {
	switch mode {
	case ModeReplace:
		deleted, err := im.store.DeleteAll(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("delete courses: %w", err)
		}
		im.logger.Printf("catalog=import status=truncated deleted=%d", deleted)
	case ModeUpsert:
	default:
		return Stats{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	stats := Stats{Total: len(rows)}
	for start := 0; start < len(rows); start += im.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		end := start + im.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		b := im.runBatch(ctx, rows[start:end])
		stats.Inserted += b.Inserted
		stats.Updated += b.Updated
		stats.Skipped += b.Skipped
	}

	im.logger.Printf(
		"catalog=import status=done mode=%s total=%d inserted=%d updated=%d skipped=%d",
		mode, stats.Total, stats.Inserted, stats.Updated, stats.Skipped,
	)
	return stats, nil
}

func (im *Importer) runBatch(ctx context.Context, rows []gjson.Result) Stats {
	var st Stats
	valid := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		c, ok := RowToCourse(r)
		if !ok {
			st.Skipped++
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return st
	}

	ins, upd, err := im.store.UpsertBatch(ctx, valid)
	if err == nil {
		st.Inserted += ins
		st.Updated += upd
		return st
	}

	im.logger.Printf("catalog=import status=batch_failed rows=%d err=%v", len(valid), err)
	for _, c := range valid {
		inserted, err := im.store.Upsert(ctx, c)
		if err != nil {
			im.logger.Printf("catalog=import status=row_skipped url=%s err=%v", c.URL, err)
			st.Skipped++
			continue
		}
		if inserted {
			st.Inserted++
		} else {
			st.Updated++
		}
	}
	return st
}
