package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"commanders-backend/internal/config"
	"commanders-backend/pkg/logger"
)

// MinIOStorage lưu ảnh lên MinIO, ref là public URL của object
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Tạo bucket nếu chưa có
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{client: client, bucket: cfg.MinIOBucket}, nil
}

func (s *MinIOStorage) Store(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := "commanders/" + name

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	// Public URL: http://host:9000/commanders/commanders/<name>
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key), nil
}

// keyFromRef map public URL về object key, "" nếu ref không thuộc bucket này
func (s *MinIOStorage) keyFromRef(ref string) string {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(ref, marker)
	if idx < 0 {
		return ""
	}
	return ref[idx+len(marker):]
}

func (s *MinIOStorage) Remove(ctx context.Context, ref string) bool {
	key := s.keyFromRef(ref)
	if key == "" {
		return false
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.Warn("Failed to remove image from minio", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

func (s *MinIOStorage) List(ctx context.Context) ([]string, error) {
	var refs []string

	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}

	objectsCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    "commanders/",
		Recursive: true,
	})
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		refs = append(refs, fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, object.Key))
	}

	return refs, nil
}
