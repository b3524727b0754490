package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds configuration for the MinIO store
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the URL prefix objects are served from
	PublicURL string
}

// MinIOStore keeps files in a MinIO (or any S3-compatible) bucket
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOStore connects to MinIO and creates the bucket when missing
func NewMinIOStore(ctx context.Context, cfg MinIOConfig) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("MINIO_ENDPOINT is required for the minio storage driver")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	base := cfg.PublicURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

func (s *MinIOStore) Name() string { return "minio" }

func (s *MinIOStore) Store(ctx context.Context, data []byte, meta FileMeta) (string, error) {
	key := meta.Kind.Dir() + "/" + objectName(meta)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: meta.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *MinIOStore) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(url, s.baseURL)
	if err != nil {
		return err
	}

	// RemoveObject succeeds for missing keys, so stat first to report them
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
