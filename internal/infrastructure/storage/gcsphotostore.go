package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	sharedConfig "github.com/chroma-excellence/chromaqa/internal/shared/config"
)

// GCSPhotoStore keeps uploaded photo files in a Google Cloud Storage
// bucket. The recorded storage path is the object name, so removal and
// export work from the photo row alone.
type GCSPhotoStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSPhotoStore connects with explicit credentials when configured,
// otherwise application default credentials. The bucket is checked up
// front so a misconfigured deployment fails at startup, not on the
// first upload.
func NewGCSPhotoStore(ctx context.Context, cfg *sharedConfig.StorageConfig) (*GCSPhotoStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("bucket %q is not accessible: %w", cfg.Bucket, err)
	}

	return &GCSPhotoStore{client: client, bucket: cfg.Bucket}, nil
}

// Store uploads the photo and returns the object name.
func (s *GCSPhotoStore) Store(ctx context.Context, reportID uint, filename string, r io.Reader) (string, error) {
	name, err := randomPhotoName(filename)
	if err != nil {
		return "", err
	}
	object := photoObjectName(reportID, name)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = photoContentType(filename)

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish photo upload: %w", err)
	}

	return object, nil
}

// Remove deletes the photo object. Missing objects are not an error.
func (s *GCSPhotoStore) Remove(ctx context.Context, storagePath string) error {
	err := s.client.Bucket(s.bucket).Object(storagePath).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("failed to delete photo object: %w", err)
	}
	return nil
}

func (s *GCSPhotoStore) Close() error {
	return s.client.Close()
}

func photoObjectName(reportID uint, name string) string {
	return fmt.Sprintf("reports/report-%d/%s", reportID, name)
}
