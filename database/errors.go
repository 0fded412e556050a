package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound indicates a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (duplicate email,
	// duplicate board membership).
	ErrConflict = errors.New("conflict")
)

// translateErr maps driver-level constraint violations onto the store's
// sentinel errors. Uniqueness is enforced by the schema, not by
// check-then-insert, so this is where duplicates surface.
func translateErr(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case sqlite3.ErrConstraintForeignKey:
			// A broken reference means the parent row is gone.
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return err
}
