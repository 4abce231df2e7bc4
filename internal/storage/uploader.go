package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Uploader stores an uploaded file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// S3Uploader stores objects in an S3 bucket and builds public URLs from a
// CDN base URL.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	cdnBase string
	logger  *zap.Logger
}

// NewS3Uploader builds an uploader using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, region, bucket, cdnBase string, logger *zap.Logger) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		cdnBase: strings.TrimRight(cdnBase, "/"),
		logger:  logger,
	}, nil
}

// Upload puts the object and returns its CDN URL.
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to S3: %w", err)
	}

	u.logger.Debug("Uploaded object to S3",
		zap.String("bucket", u.bucket),
		zap.String("key", key),
	)

	return fmt.Sprintf("%s/%s", u.cdnBase, key), nil
}

// LocalUploader writes files under a local directory. Used in development
// when S3 is not configured; the directory is served by the HTTP server.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

// Upload writes the file to disk and returns a URL under BaseURL.
func (u *LocalUploader) Upload(_ context.Context, key string, body io.Reader) (string, error) {
	path := filepath.Join(u.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return strings.TrimRight(u.BaseURL, "/") + "/" + key, nil
}
