package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrGapSnapshotNotFound = errors.New("gap snapshot not found")
	ErrUserNotFound        = errors.New("user not found")
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches s literally anywhere in
// the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
