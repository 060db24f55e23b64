package types

import (
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/samber/lo"
)

// validateChoice rejects values outside a closed set of string labels
func validateChoice[T ~string](value T, allowed []T, field string) error {
	if lo.Contains(allowed, value) {
		return nil
	}
	return ierr.NewErrorf("invalid %s: %s", field, value).
		WithHintf("\"%s\" is not a valid choice for %s", value, field).
		WithReportableDetails(map[string]any{
			field:     value,
			"allowed": allowed,
		}).
		Mark(ierr.ErrValidation)
}
