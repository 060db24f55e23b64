package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/betulabla/foundation/internal/api/dto"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/gin-gonic/gin"
)

const (
	uploadField = "file"

	// hard ceiling on a multipart body, per type limits are enforced by the media service
	maxUploadBytes = 32 << 20
)

// readUpload returns the content of the multipart field "file"
func readUpload(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("No file was submitted.").
			WithReportableDetails(map[string]any{
				uploadField: "No file was submitted.",
			}).
			Mark(ierr.ErrValidation)
	}

	f, err := header.Open()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read the uploaded file").
			Mark(ierr.ErrValidation)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read the uploaded file").
			Mark(ierr.ErrValidation)
	}
	if len(data) > maxUploadBytes {
		return nil, ierr.NewErrorf("upload exceeds %d bytes", maxUploadBytes).
			WithHint("File is too large").
			Mark(ierr.ErrValidation)
	}
	return data, nil
}

func sendExport(c *gin.Context, file *dto.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func invalidFilter(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid filter parameters").
		Mark(ierr.ErrValidation)
}

func invalidPayload(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid request format").
		Mark(ierr.ErrValidation)
}
