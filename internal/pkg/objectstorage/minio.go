// Package objectstorage wraps the MinIO client behind the small surface
// the application needs for avatar files.
package objectstorage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arjn/careermatch/internal/pkg/logger"
)

// ObjectStore is the storage surface used by services.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	Remove(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
	ObjectNameFromURL(url string) (string, bool)
}

// Config carries the connection settings for a MinIO (or S3-compatible) endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base under which objects are
	// served, e.g. "https://cdn.example.com". When empty, URLs are built
	// from the endpoint.
	PublicURL string
}

// MinioStorage stores objects in a single bucket on a MinIO endpoint.
type MinioStorage struct {
	client *minio.Client
	cfg    Config
}

// NewMinioStorage connects to the endpoint and ensures the bucket exists.
func NewMinioStorage(ctx context.Context, cfg Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("Created storage bucket")
	}

	return &MinioStorage{client: client, cfg: cfg}, nil
}

// Upload writes an object into the configured bucket.
func (s *MinioStorage) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return nil
}

// Remove deletes an object from the bucket. Missing objects are not an error.
func (s *MinioStorage) Remove(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectName, err)
	}
	return nil
}

// PublicURL returns the externally reachable URL for an object.
func (s *MinioStorage) PublicURL(objectName string) string {
	base := s.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + s.cfg.Endpoint
	}
	return strings.TrimRight(base, "/") + "/" + s.cfg.Bucket + "/" + objectName
}

// ObjectNameFromURL recovers the object key from a URL produced by
// PublicURL, so stale avatars can be removed when replaced.
func (s *MinioStorage) ObjectNameFromURL(url string) (string, bool) {
	marker := "/" + s.cfg.Bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	return url[idx+len(marker):], true
}
