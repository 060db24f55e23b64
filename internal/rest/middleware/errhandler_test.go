package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name: "validation with details",
			err: ierr.NewError("bad field").
				WithHint("Invalid request").
				WithReportableDetails(map[string]any{"gender": "\"x\" is not a valid choice."}).
				Mark(ierr.ErrValidation),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request",
			wantDetails: map[string]any{"gender": "\"x\" is not a valid choice."},
		},
		{
			name:        "not found",
			err:         ierr.NewError("orphan x not found").WithHint("Not found.").Mark(ierr.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not found.",
		},
		{
			name: "innermost hint wins",
			err: ierr.WithError(ierr.NewError("inner").WithHint("inner hint").Mark(ierr.ErrAlreadyExists)).
				WithHint("outer hint").
				Mark(ierr.ErrAlreadyExists),
			wantStatus:  http.StatusConflict,
			wantMessage: "inner hint",
		},
		{
			name:        "unmarked",
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: fallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler(logger.NewNopLogger()))
			r.GET("/fail", func(c *gin.Context) { c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ierr.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Error.Display)
			for k, v := range tt.wantDetails {
				assert.Equal(t, v, resp.Error.Details[k])
			}
		})
	}
}
