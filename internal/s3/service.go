package s3

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/betulabla/foundation/internal/config"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/cockroachdb/errors"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

type Service interface {
	// ObjectKey builds the storage key for a file name under the document type folder
	ObjectKey(docType DocumentType, ownerID, fileName string) string
	UploadDocument(ctx context.Context, document *Document) error
	GetPresignedUrl(ctx context.Context, key string) (string, error)
	DeleteDocument(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
}

// NewService returns nil when the media bucket is disabled
func NewService(config *config.Configuration) (Service, error) {
	if !config.S3.Enabled {
		return nil, nil
	}

	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(config.S3.Region),
	}
	if config.S3.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.S3.AccessKeyID, config.S3.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrStorage)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.S3.Endpoint)
		}
		o.UsePathStyle = config.S3.UsePathStyle
	})

	return &s3ServiceImpl{
		config: &config.S3,
		client: client,
	}, nil
}

func (s *s3ServiceImpl) ObjectKey(docType DocumentType, ownerID, fileName string) string {
	return path.Join(s.config.KeyPrefix, docType.folder(), ownerID, fileName)
}

func (s *s3ServiceImpl) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nske *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nske) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check if document exists").
			Mark(ierr.ErrStorage)
	}
	return true, nil
}

func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, key string) (string, error) {
	duration, err := time.ParseDuration(s.config.PresignExpiryDuration)
	if err != nil {
		duration = defaultPresignExpiryDuration
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrStorage)
	}

	return result.URL, nil
}

func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) error {
	contentType := document.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(document.Key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, document.Key).
			Mark(ierr.ErrStorage)
	}
	return nil
}

func (s *s3ServiceImpl) DeleteDocument(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrStorage)
	}
	return nil
}
