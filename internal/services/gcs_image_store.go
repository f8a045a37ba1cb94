package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/brecho/backend/internal/catalog"
	"github.com/brecho/backend/internal/models"
)

// GCSImageStore is the hosted object-storage implementation of
// ImageStore. Objects are publicly reachable at <base>/<key>.
type GCSImageStore struct {
	client     *gcs.Client
	bucket     string
	publicBase string
}

// NewGCSImageStore creates the storage client once at server startup.
// credentialsJSON may be empty to use ambient credentials; publicBase
// may be empty to use the default storage.googleapis.com URL.
func NewGCSImageStore(ctx context.Context, bucket, credentialsJSON, publicBase string) (*GCSImageStore, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: storage client: %w", err)
	}
	if publicBase == "" {
		publicBase = "https://storage.googleapis.com/" + bucket
	}

	return &GCSImageStore{
		client:     client,
		bucket:     bucket,
		publicBase: publicBase,
	}, nil
}

func (s *GCSImageStore) Close() error {
	return s.client.Close()
}

func (s *GCSImageStore) Save(ctx context.Context, filename, contentType string, file io.Reader) (*models.ImageUploadResponse, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := uuid.New().String() + ext

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, file); err != nil {
		w.Close()
		return nil, fmt.Errorf("gcs: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gcs: finalize object: %w", err)
	}

	return &models.ImageUploadResponse{
		Key:      key,
		URL:      s.URL(key),
		Filename: key,
	}, nil
}

func (s *GCSImageStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return ErrImageNotFound
	}
	if err != nil {
		return fmt.Errorf("gcs: delete object: %w", err)
	}
	return nil
}

func (s *GCSImageStore) URL(ref string) string {
	return catalog.ImageURL(s.publicBase, ref)
}
