package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html#23505:~:text=foreign_key_violation-,23505,-unique_violation
const PgErrUniqueViolation = "23505"

// ErrStoreUnavailable - хранилище недоступно. Команда не ретраится этим
// сервисом, политика повторов принадлежит вызывающему.
var ErrStoreUnavailable = errors.New("store is unavailable")

// Unavailable помечает неожиданную ошибку хранилища, чтобы вызывающий
// мог отличить недоступность базы от доменных ошибок.
func Unavailable(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
