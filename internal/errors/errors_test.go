package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation",
			err:  NewError("bad status").WithHint("Invalid status").Mark(ErrValidation),
			want: http.StatusBadRequest,
		},
		{
			name: "not found",
			err:  NewError("orphan not found").Mark(ErrNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "unauthenticated",
			err:  NewError("token expired").Mark(ErrUnauthenticated),
			want: http.StatusUnauthorized,
		},
		{
			name: "permission denied",
			err:  NewError("admin only").Mark(ErrPermissionDenied),
			want: http.StatusForbidden,
		},
		{
			name: "referential integrity",
			err:  WithError(errors.New("fk violation")).Mark(ErrReferentialIntegrity),
			want: http.StatusBadRequest,
		},
		{
			name: "rate limited",
			err:  NewError("slow down").Mark(ErrRateLimited),
			want: http.StatusTooManyRequests,
		},
		{
			name: "storage",
			err:  WithError(errors.New("s3 unreachable")).WithHint("Failed to upload file").Mark(ErrStorage),
			want: http.StatusInternalServerError,
		},
		{
			name: "unmarked",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilderKeepsHintAndMark(t *testing.T) {
	err := NewErrorf("report %s is not approved", "report_1").
		WithHint("Report must be approved before publishing").
		WithMessagef("status=%s", "draft").
		Mark(ErrValidation)

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, errors.FlattenHints(err), "Report must be approved before publishing")
	assert.Contains(t, err.Error(), "report report_1 is not approved")
}
