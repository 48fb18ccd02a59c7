// Package storage holds the off-site backup target for CSV dumps.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	infraconfig "github.com/zaoknom/docbox-backend/internal/infrastructure/config"
)

// BackupStorage is where the nightly CSV dumps end up
type BackupStorage interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) error
}

// S3BackupStorage uploads backups to an S3 bucket. It works against
// AWS as well as S3-compatible storage (MinIO and friends) via the
// endpoint override. Credentials come from the default AWS chain.
type S3BackupStorage struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// S3BackupStorageOption is a functional option for configuring S3BackupStorage
type S3BackupStorageOption func(*S3BackupStorage)

// WithLogger sets a custom logger for S3BackupStorage
func WithLogger(logger *zap.Logger) S3BackupStorageOption {
	return func(s *S3BackupStorage) {
		s.logger = logger
	}
}

// NewS3BackupStorage creates a backup storage from configuration
func NewS3BackupStorage(cfg *infraconfig.BackupConfig, opts ...S3BackupStorageOption) (*S3BackupStorage, error) {
	if cfg == nil {
		return nil, errors.New("backup configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("backup bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "eu-central-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid backup endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	storage := &S3BackupStorage{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Call this
// before the first upload of a run.
func (s *S3BackupStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating backup bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores one backup file under the configured prefix
func (s *S3BackupStorage) Upload(ctx context.Context, filename string, data []byte, contentType string) error {
	if filename == "" {
		return errors.New("backup filename is required")
	}

	key := s.Key(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload backup: %w", err)
	}

	s.logger.Info("Backup uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)))
	return nil
}

// Key returns the object key a filename maps to
func (s *S3BackupStorage) Key(filename string) string {
	if s.prefix == "" {
		return filename
	}
	return strings.TrimSuffix(s.prefix, "/") + "/" + filename
}

// Ensure S3BackupStorage implements BackupStorage
var _ BackupStorage = (*S3BackupStorage)(nil)
