package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	// ErrInvalidReference is a write naming a related row that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")

	ErrInvalidPassword = errors.New("invalid password")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// wrap maps driver errors onto the package sentinels and adds op context.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectRows turns a zero-row write into ErrNotFound.
func expectRows(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
