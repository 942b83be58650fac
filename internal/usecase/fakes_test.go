package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"skillgap/internal/domain/entity"
	"skillgap/internal/domain/gap"
	"skillgap/internal/domain/normalised"
	"skillgap/internal/domain/user"
	"skillgap/internal/normalize"
	"skillgap/internal/recommend"
	"skillgap/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type mockUserRepo struct {
	users map[uuid.UUID]user.User
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.users == nil {
		m.users = map[uuid.UUID]user.User{}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func newUserRepoWith(ids ...uuid.UUID) *mockUserRepo {
	m := &mockUserRepo{users: map[uuid.UUID]user.User{}}
	for _, id := range ids {
		m.users[id] = user.User{ID: id, Username: id.String()[:8], Email: id.String()[:8] + "@example.com"}
	}
	return m
}

type mockCVRepo struct {
	names map[uuid.UUID][]string
	err   error
}

func (m *mockCVRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, entities []entity.Entity) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.names == nil {
		m.names = map[uuid.UUID][]string{}
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Text)
	}
	m.names[userID] = names
	return len(names), nil
}

func (m *mockCVRepo) NamesByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.names[userID], nil
}

type mockJDRepo struct {
	names    []string
	replaced bool
	err      error
}

func (m *mockJDRepo) Append(_ context.Context, entities []entity.Entity) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	for _, e := range entities {
		m.names = append(m.names, e.Text)
	}
	return len(entities), nil
}

func (m *mockJDRepo) ReplaceAll(ctx context.Context, entities []entity.Entity) (int, error) {
	m.names = nil
	m.replaced = true
	return m.Append(ctx, entities)
}

func (m *mockJDRepo) Names(context.Context) ([]string, error) {
	return m.names, m.err
}

type mockSnapshotRepo struct {
	snaps []gap.Snapshot
	err   error
}

func (m *mockSnapshotRepo) Create(_ context.Context, userID uuid.UUID, missing []string) (gap.Snapshot, error) {
	if m.err != nil {
		return gap.Snapshot{}, m.err
	}
	s := gap.Snapshot{ID: uuid.New(), UserID: userID, MissingEntities: missing, CreatedAt: time.Now()}
	m.snaps = append(m.snaps, s)
	return s, nil
}

func (m *mockSnapshotRepo) Latest(_ context.Context, userID uuid.UUID) (gap.Snapshot, error) {
	if m.err != nil {
		return gap.Snapshot{}, m.err
	}
	for i := len(m.snaps) - 1; i >= 0; i-- {
		if m.snaps[i].UserID == userID {
			return m.snaps[i], nil
		}
	}
	return gap.Snapshot{}, repository.ErrGapSnapshotNotFound
}

func (m *mockSnapshotRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]gap.Snapshot, error) {
	out := make([]gap.Snapshot, 0)
	for i := len(m.snaps) - 1; i >= 0 && len(out) < limit; i-- {
		if m.snaps[i].UserID == userID {
			out = append(out, m.snaps[i])
		}
	}
	return out, nil
}

type mockNormalisedRepo struct {
	stored map[uuid.UUID][]normalised.Entity
	calls  int
}

func (m *mockNormalisedRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, items []normalised.Entity) ([]normalised.Entity, error) {
	m.calls++
	if m.stored == nil {
		m.stored = map[uuid.UUID][]normalised.Entity{}
	}
	m.stored[userID] = items
	return items, nil
}

func (m *mockNormalisedRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]normalised.Entity, error) {
	return m.stored[userID], nil
}

// upperNormaliser resolves every entity to its upper-cased form.
type upperNormaliser struct {
	seen []string
}

func (n *upperNormaliser) Normalise(_ context.Context, original string) normalize.Match {
	n.seen = append(n.seen, original)
	return normalize.Match{
		Original:   original,
		Normalised: strings.ToUpper(original),
		Source:     normalised.SourceManual,
		Type:       normalised.TypeSkill,
	}
}

type memCache struct {
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

// countingSource serves fixed candidates per lower-cased skill.
type countingSource struct {
	name  string
	items map[string][]recommend.Candidate
	calls int
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Candidates(_ context.Context, skill string, limit int) ([]recommend.Candidate, error) {
	s.calls++
	c := s.items[strings.ToLower(skill)]
	if len(c) > limit {
		c = c[:limit]
	}
	return c, nil
}
