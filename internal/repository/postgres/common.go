package postgres

import (
	"database/sql"

	ierr "github.com/betulabla/foundation/internal/errors"
)

// expectAffected turns a zero-row UPDATE or DELETE into a not found error
func expectAffected(result sql.Result, entity string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
