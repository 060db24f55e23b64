package dto

import (
	"fmt"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

// RootResponse is the API directory served at the root paths
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// decimals are rendered as fixed point strings
func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

func formatNullDecimal(d decimal.NullDecimal, places int32) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(places)
	return &s
}

// validateDecimal enforces the precision of a NUMERIC(digits, places) column
func validateDecimal(field string, d decimal.Decimal, digits, places int32) error {
	if !d.Equal(d.Truncate(places)) {
		return decimalError(field, "Ensure that there are no more than %d decimal places.", places)
	}
	limit := decimal.New(1, digits-places)
	if d.Abs().GreaterThanOrEqual(limit) {
		return decimalError(field, "Ensure that there are no more than %d digits before the decimal point.", digits-places)
	}
	return nil
}

func decimalError(field, format string, n int32) error {
	msg := fmt.Sprintf(format, n)
	return ierr.NewErrorf("invalid %s", field).
		WithHint(msg).
		WithReportableDetails(map[string]any{field: msg}).
		Mark(ierr.ErrValidation)
}

// requireFields reports the json names of mandatory fields missing from a full update
func requireFields(fields map[string]bool) error {
	details := make(map[string]any)
	for name, present := range fields {
		if !present {
			details[name] = "This field is required."
		}
	}
	if len(details) == 0 {
		return nil
	}
	return ierr.NewError("missing required fields").
		WithHint("Request validation failed").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}

// applyNullable writes a field that was present in the request through to dst.
// An explicit null clears it; an absent key leaves it unchanged.
func applyNullable[T any](n nullable.Nullable[T], dst **T) {
	if !n.IsSpecified() {
		return
	}
	if n.IsNull() {
		*dst = nil
		return
	}
	v := n.MustGet()
	*dst = &v
}

// applyNullableDate is applyNullable where an empty date string also clears the field
func applyNullableDate(n nullable.Nullable[types.Date], dst **types.Date) {
	applyNullable(n, dst)
	*dst = optionalDate(*dst)
}

// optionalDate maps the zero date decoded from "" to no date
func optionalDate(d *types.Date) *types.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func nullDecimal(n nullable.Nullable[decimal.Decimal]) decimal.NullDecimal {
	if !n.IsSpecified() || n.IsNull() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(n.MustGet())
}

// ExportFile is a generated spreadsheet ready to be sent as an attachment
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type MessageResponse struct {
	Message string `json:"message"`
}
