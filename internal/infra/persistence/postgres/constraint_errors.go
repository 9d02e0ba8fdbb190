package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names declared in the migrations.
const (
	constraintUsersEmailKey = "users_email_key"
	constraintBookmarksUser = "bookmarks_user_id_fkey"
)

func pgErrorCode(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}

	return pgErr.Code, pgErr.ConstraintName, true
}

// isUniqueConstraintViolation matches SQLSTATE 23505. An empty constraint
// argument matches any unique index. The driver error reaches here untouched
// because the GORM handle is opened without TranslateError.
func isUniqueConstraintViolation(err error, constraint string) bool {
	code, name, ok := pgErrorCode(err)

	return ok && code == pgerrcode.UniqueViolation && (constraint == "" || name == constraint)
}

func isForeignKeyConstraintViolation(err error, constraint string) bool {
	code, name, ok := pgErrorCode(err)

	return ok && code == pgerrcode.ForeignKeyViolation && (constraint == "" || name == constraint)
}
