// Package storage uploads media files to an S3-compatible object store and
// returns publicly resolvable URLs.
package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/middleware"
	"vidtube/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores a local file and returns its public URL. Callers are
// responsible for removing the local file afterwards.
type Uploader interface {
	Upload(ctx context.Context, localPath string, kind string) (string, error)
}

// MinioStorage implements Uploader over a MinIO (or any S3-compatible) endpoint.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorage connects to the object store and ensures the bucket exists.
func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	s := &MinioStorage{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket error: %w", err)
		}
	}

	middleware.Logger.Info("Object storage connected", "endpoint", cfg.MinioEndpoint, "bucket", s.bucket)
	return s, nil
}

// Upload stores the file under a random object name prefixed by kind
// ("avatars", "covers", "videos", "thumbnails") and returns its public URL.
func (s *MinioStorage) Upload(ctx context.Context, localPath string, kind string) (string, error) {
	start := time.Now()

	ext := filepath.Ext(localPath)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	observability.ObserveUpload(kind, start, err)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
