package auth

import (
	"context"
	"errors"
	"testing"

	"skillgap/internal/domain/user"

	"github.com/google/uuid"
)

type mockUsers struct {
	byID  map[uuid.UUID]user.User
	order []string
}

func newMockUsers() *mockUsers {
	return &mockUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *mockUsers) Create(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUsers) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *mockUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.order = append(m.order, "username")
	for _, u := range m.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.order = append(m.order, "email")
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func TestRegister_ThenLogin(t *testing.T) {
	users := newMockUsers()
	svc := NewService(users)

	u, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: " Ada@Example.com ", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ada@example.com" || u.PasswordHash != "" {
		t.Fatalf("expected normalized email and no hash, got %+v", u)
	}

	got, err := svc.Login(context.Background(), LoginInput{Email: "ADA@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected login err: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected same user")
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_ChecksUsernameBeforeEmail(t *testing.T) {
	users := newMockUsers()
	id := uuid.New()
	users.byID[id] = user.User{ID: id, Username: "ada", Email: "ada@example.com"}
	svc := NewService(users)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "ada@example.com", Password: "correct-horse"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(users.order) != 1 || users.order[0] != "username" {
		t.Fatalf("expected only the username check, got %v", users.order)
	}

	_, err = svc.Register(context.Background(), RegisterInput{Username: "grace", Email: "ada@example.com", Password: "correct-horse"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newMockUsers())
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	cases := []RegisterInput{
		{Username: "", Email: "a@example.com", Password: "correct-horse"},
		{Username: "ada", Email: "not-an-email", Password: "correct-horse"},
		{Username: "ada", Email: "a@example.com", Password: "short"},
		{Username: "ada", Email: "a@example.com", Password: string(long)},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}
