package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap/internal/domain/course"
)

type memStore struct {
	rows       map[string]course.Course
	deleted    int
	failBatch  bool
	failURLs   map[string]bool
	batchCalls int
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]course.Course{}, failURLs: map[string]bool{}}
}

func (m *memStore) DeleteAll(ctx context.Context) (int64, error) {
	n := len(m.rows)
	m.rows = map[string]course.Course{}
	m.deleted++
	return int64(n), nil
}

func (m *memStore) UpsertBatch(ctx context.Context, courses []course.Course) (int, int, error) {
	m.batchCalls++
	if m.failBatch {
		return 0, 0, errors.New("batch failed")
	}
	for _, c := range courses {
		if m.failURLs[c.URL] {
			return 0, 0, fmt.Errorf("bad row %s", c.URL)
		}
	}
	ins, upd := 0, 0
	for _, c := range courses {
		if _, ok := m.rows[c.URL]; ok {
			upd++
		} else {
			ins++
		}
		m.rows[c.URL] = c
	}
	return ins, upd, nil
}

func (m *memStore) Upsert(ctx context.Context, c course.Course) (bool, error) {
	if m.failURLs[c.URL] {
		return false, fmt.Errorf("bad row %s", c.URL)
	}
	_, exists := m.rows[c.URL]
	m.rows[c.URL] = c
	return !exists, nil
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

const sampleExport = `{
  "courses": [
    {"url": "https://x/1", "course_name": "Docker Fundamentals", "provider": "coursera", "rating": "4.7", "nu_reviews": "1,204", "skills": "[\"Docker\", \"Containers\"]"},
    {"url": "https://x/2", "course_name": "Intro to SQL", "provider": "edx_courses", "organization": "{\"HarvardX\"}", "skills": "[\"{'skill': 'SQL'}\"]", "has_rating": 1},
    {"url": "", "course_name": "No URL", "provider": "coursera"},
    {"url": "https://x/4", "course_name": "  ", "provider": "coursera"},
    {"url": "https://x/5", "course_name": "No provider"}
  ]
}`

func TestImport_UpsertTwiceCountsUpdates(t *testing.T) {
	store := newMemStore()
	im := NewImporter(store, 2, quietLogger())

	first, err := im.Import(context.Background(), []byte(sampleExport), ModeUpsert)
	require.NoError(t, err)
	assert.Equal(t, Stats{Inserted: 2, Updated: 0, Skipped: 3, Total: 5}, first)

	second, err := im.Import(context.Background(), []byte(sampleExport), ModeUpsert)
	require.NoError(t, err)
	assert.Equal(t, Stats{Inserted: 0, Updated: 2, Skipped: 3, Total: 5}, second)
	assert.Equal(t, 0, store.deleted)
}

func TestImport_ReplaceDeletesFirst(t *testing.T) {
	store := newMemStore()
	store.rows["https://old"] = course.Course{URL: "https://old"}
	im := NewImporter(store, 10, quietLogger())

	st, err := im.Import(context.Background(), []byte(sampleExport), ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, store.deleted)
	assert.Equal(t, 2, st.Inserted)
	_, stale := store.rows["https://old"]
	assert.False(t, stale)
}

func TestImport_CoercesFields(t *testing.T) {
	store := newMemStore()
	im := NewImporter(store, 10, quietLogger())

	_, err := im.Import(context.Background(), []byte(sampleExport), ModeUpsert)
	require.NoError(t, err)

	docker := store.rows["https://x/1"]
	require.NotNil(t, docker.Rating)
	assert.InDelta(t, 4.7, *docker.Rating, 1e-9)
	require.NotNil(t, docker.NumReviews)
	assert.Equal(t, 1204, *docker.NumReviews)
	assert.Equal(t, []string{"Docker", "Containers"}, docker.Skills)
	assert.Nil(t, docker.Organization)

	sql := store.rows["https://x/2"]
	assert.Equal(t, []string{"SQL"}, sql.Skills)
	require.NotNil(t, sql.Organization)
	assert.Equal(t, "HarvardX", *sql.Organization)
	require.NotNil(t, sql.HasRating)
	assert.Equal(t, 1, *sql.HasRating)
}

func TestImport_BatchFailureFallsBackToRows(t *testing.T) {
	store := newMemStore()
	store.failURLs["https://x/2"] = true
	im := NewImporter(store, 10, quietLogger())

	st, err := im.Import(context.Background(), []byte(sampleExport), ModeUpsert)
	require.NoError(t, err)
	assert.Equal(t, Stats{Inserted: 1, Updated: 0, Skipped: 4, Total: 5}, st)
	_, ok := store.rows["https://x/1"]
	assert.True(t, ok)
	_, ok = store.rows["https://x/2"]
	assert.False(t, ok)
}

func TestImport_MalformedDocument(t *testing.T) {
	im := NewImporter(newMemStore(), 10, quietLogger())
	for _, doc := range []string{`not json`, `[]`, `{"items": []}`, `{"courses": {}}`} {
		_, err := im.Import(context.Background(), []byte(doc), ModeUpsert)
		assert.ErrorIs(t, err, ErrMalformedCatalog, "doc %s", doc)
	}
}

func TestImport_InvalidMode(t *testing.T) {
	im := NewImporter(newMemStore(), 10, quietLogger())
	_, err := im.Import(context.Background(), []byte(`{"courses": []}`), Mode("merge"))
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestImport_EmptyCourses(t *testing.T) {
	store := newMemStore()
	st, err := NewImporter(store, 10, quietLogger()).Import(context.Background(), []byte(`{"courses": []}`), ModeUpsert)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
	assert.Equal(t, 0, store.batchCalls)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Replace ")
	require.NoError(t, err)
	assert.Equal(t, ModeReplace, m)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
