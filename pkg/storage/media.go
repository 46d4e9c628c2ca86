package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kulinarya/backend/pkg/config"
)

// MediaStorage stores recipe pictures and videos in a MinIO/S3 bucket and
// hands back the public URL recorded on the recipe document.
type MediaStorage struct {
	client *mclient.Client
	bucket string
	public string
}

// New creates the MinIO client and fail-fast checks that the target bucket
// exists.
func New(ctx context.Context, cfg *config.Config) (*MediaStorage, error) {
	client, err := mclient.New(cfg.MinioEndpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("storage: bucket %q does not exist", cfg.MinioBucket)
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return &MediaStorage{
		client: client,
		bucket: cfg.MinioBucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

// Upload stores an object under "recipes/<uuid><ext>" and returns its URL.
func (s *MediaStorage) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := path.Join("recipes", uuid.NewString()+strings.ToLower(path.Ext(filename)))

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", key, err)
	}

	return s.public + "/" + key, nil
}

// Remove deletes a previously uploaded object given the URL stored on the
// recipe. Unknown URLs are ignored.
func (s *MediaStorage) Remove(ctx context.Context, mediaURL string) error {
	prefix := s.public + "/"
	if !strings.HasPrefix(mediaURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(mediaURL, prefix)
	return s.client.RemoveObject(ctx, s.bucket, key, mclient.RemoveObjectOptions{})
}
