package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound: no live row with the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate: the store rejected a uniqueness constraint
	// (duplicate join pair, duplicate unique column).
	ErrDuplicate = errors.New("record already exists")
	// ErrForeignKey: the store rejected a referential constraint
	// (referenced parent missing or deleted).
	ErrForeignKey = errors.New("referenced record does not exist")
)

// classify maps store-level constraint violations onto the typed
// sentinels above and passes everything else through untouched. It
// understands gorm's translated errors, raw postgres error codes, and
// the sqlite driver used in tests.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrForeignKey
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return ErrForeignKey
	}
	return err
}
