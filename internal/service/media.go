package service

import (
	"context"
	"fmt"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/s3"
	"github.com/betulabla/foundation/internal/sentry"
	"github.com/betulabla/foundation/internal/types"
	"github.com/h2non/filetype"
	"github.com/samber/lo"
)

var (
	photoExtensions      = []string{"jpg", "png", "gif", "webp"}
	attachmentExtensions = []string{"pdf", "jpg", "png", "gif", "webp", "doc", "docx", "xls", "xlsx", "ppt", "pptx"}
)

// MediaService stores uploaded files in the media bucket and resolves their URLs
type MediaService interface {
	// Upload validates the file content and returns the object key it was stored under
	Upload(ctx context.Context, docType s3.DocumentType, ownerID string, data []byte) (string, error)
	// URL returns a presigned download URL, nil when there is no object or no bucket
	URL(ctx context.Context, key *string) *string
	Delete(ctx context.Context, key *string)
}

type mediaService struct {
	ServiceParams
	sentry *sentry.Service
}

func NewMediaService(params ServiceParams, sentry *sentry.Service) MediaService {
	return &mediaService{
		ServiceParams: params,
		sentry:        sentry,
	}
}

func (s *mediaService) Upload(ctx context.Context, docType s3.DocumentType, ownerID string, data []byte) (string, error) {
	if s.S3 == nil {
		return "", ierr.NewError("media bucket is disabled").
			WithHint("File uploads are not enabled").
			Mark(ierr.ErrValidation)
	}

	if len(data) == 0 {
		return "", ierr.NewError("empty upload").
			WithHint("The submitted file is empty.").
			WithReportableDetails(map[string]any{"file": "The submitted file is empty."}).
			Mark(ierr.ErrValidation)
	}

	maxBytes, allowed, prefix := s.rules(docType)
	if int64(len(data)) > maxBytes {
		return "", ierr.NewErrorf("upload of %d bytes exceeds %d", len(data), maxBytes).
			WithHintf("File is too large, the limit is %d MB", maxBytes>>20).
			WithReportableDetails(map[string]any{
				"size":      len(data),
				"max_bytes": maxBytes,
			}).
			Mark(ierr.ErrValidation)
	}

	kind, err := filetype.Match(data)
	if err != nil || !lo.Contains(allowed, kind.Extension) {
		return "", ierr.NewErrorf("unsupported file type %q", kind.Extension).
			WithHint("Unsupported file type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}

	key := s.S3.ObjectKey(docType, ownerID, fmt.Sprintf("%s.%s", types.GenerateShortIDWithPrefix(prefix), kind.Extension))

	span, ctx := s.sentry.StartStorageSpan(ctx, "s3.upload", key)
	err = s.S3.UploadDocument(ctx, &s3.Document{
		Key:         key,
		Data:        data,
		ContentType: kind.MIME.Value,
		Type:        docType,
	})
	if span != nil {
		span.Finish()
	}
	if err != nil {
		return "", err
	}

	s.Logger.Infow("media uploaded", "key", key, "content_type", kind.MIME.Value, "size", len(data))
	return key, nil
}

func (s *mediaService) URL(ctx context.Context, key *string) *string {
	if s.S3 == nil || lo.FromPtr(key) == "" {
		return nil
	}

	url, err := s.S3.GetPresignedUrl(ctx, *key)
	if err != nil {
		s.Logger.Warnw("failed to presign media url", "key", *key, "error", err)
		return nil
	}
	return &url
}

// Delete removes a replaced object. Failures only leave an orphaned object behind.
func (s *mediaService) Delete(ctx context.Context, key *string) {
	if s.S3 == nil || lo.FromPtr(key) == "" {
		return
	}

	span, ctx := s.sentry.StartStorageSpan(ctx, "s3.delete", *key)
	if err := s.S3.DeleteDocument(ctx, *key); err != nil {
		s.Logger.Warnw("failed to delete media object", "key", *key, "error", err)
	}
	if span != nil {
		span.Finish()
	}
}

func (s *mediaService) rules(docType s3.DocumentType) (int64, []string, string) {
	switch docType {
	case s3.DocumentTypeOrphanPhoto:
		return s.Config.S3.MaxPhotoBytes, photoExtensions, types.SHORT_ID_PREFIX_PHOTO
	default:
		return s.Config.S3.MaxAttachmentBytes, attachmentExtensions, types.SHORT_ID_PREFIX_ATTACHMENT
	}
}
