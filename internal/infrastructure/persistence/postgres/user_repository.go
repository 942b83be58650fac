package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"skillgap/internal/database"
	"skillgap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct {
	db database.DB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	r := &UserRepository{db: db}
	sqlDB := db.SQLDB()

	var err error
	r.stmtCreate, err = sqlDB.PrepareContext(
		context.Background(),
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = sqlDB.PrepareContext(
		context.Background(),
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = sqlDB.PrepareContext(
		context.Background(),
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Username, strings.ToLower(u.Email), u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return user.ErrUsernameTaken
			case "users_email_key":
				return user.ErrEmailTaken
			}
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (r *UserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, strings.TrimSpace(username))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
