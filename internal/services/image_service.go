package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/brecho/backend/internal/catalog"
	"github.com/brecho/backend/internal/models"
)

// MaxImageBytes is the upload size limit (5 MB).
const MaxImageBytes int64 = 5 * 1024 * 1024

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrInvalidImageType = errors.New("file is not a supported image type")
)

// ImageStore persists uploaded item photos. Save returns the
// storage-relative key that gets stored on the item plus the resolved
// public URL; URL resolves a stored reference the same way the catalog
// does (absolute URLs pass through).
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, file io.Reader) (*models.ImageUploadResponse, error)
	Delete(ctx context.Context, key string) error
	URL(ref string) string
}

// ValidateUpload checks content type and declared size before any
// storage call. Both checks are local; a failure means no backend was
// contacted.
func ValidateUpload(contentType string, size int64) error {
	if !isValidImageType(contentType) {
		return ErrInvalidImageType
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}

// LocalImageStore keeps uploads on disk; the server serves them back
// under the configured public base path.
type LocalImageStore struct {
	uploadDir  string
	publicBase string
}

func NewLocalImageStore(uploadDir, publicBase string) (*LocalImageStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}
	return &LocalImageStore{
		uploadDir:  uploadDir,
		publicBase: publicBase,
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, filename, contentType string, file io.Reader) (*models.ImageUploadResponse, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, key)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.ImageUploadResponse{
		Key:      key,
		URL:      s.URL(key),
		Filename: key,
	}, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	// Keys are flat filenames; strip any path the caller sneaks in.
	path := filepath.Join(s.uploadDir, filepath.Base(key))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalImageStore) URL(ref string) string {
	return catalog.ImageURL(s.publicBase, ref)
}
