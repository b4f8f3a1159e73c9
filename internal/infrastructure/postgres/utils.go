package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta el duplicado de clave única que los repositorios
// traducen a domain.ErrDuplicate o domain.ErrEmailAlreadyExists.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
