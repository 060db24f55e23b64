package postgres

import (
	"database/sql"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// IsNoRows reports whether err is the driver's empty result sentinel
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports a duplicate key error and the violated constraint
func IsUniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// IsForeignKeyViolation reports a foreign key error and the violated constraint
func IsForeignKeyViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// WrapError marks driver errors with the matching domain sentinel.
// entity names the record in hints, for example "orphan".
func WrapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if IsNoRows(err) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	if constraint, ok := IsUniqueViolation(err); ok {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(map[string]any{"constraint": constraint}).
			Mark(ierr.ErrAlreadyExists)
	}
	if constraint, ok := IsForeignKeyViolation(err); ok {
		return ierr.WithError(err).
			WithHintf("%s is referenced by other records", entity).
			WithReportableDetails(map[string]any{"constraint": constraint}).
			Mark(ierr.ErrReferentialIntegrity)
	}
	return ierr.WithError(err).
		WithHintf("failed to access %s", entity).
		Mark(ierr.ErrDatabase)
}
