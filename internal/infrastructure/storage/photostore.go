package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalPhotoStore writes uploaded photo files under a base directory,
// one subdirectory per report. It is the development and test fallback;
// production deployments store photos in a bucket.
type LocalPhotoStore struct {
	baseDir string
}

func NewLocalPhotoStore(baseDir string) *LocalPhotoStore {
	return &LocalPhotoStore{baseDir: baseDir}
}

// Store writes the upload to disk and returns the storage path recorded
// on the photo. The original filename only contributes its extension.
func (s *LocalPhotoStore) Store(ctx context.Context, reportID uint, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, fmt.Sprintf("report-%d", reportID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo dir: %w", err)
	}

	name, err := randomPhotoName(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}

	return path, nil
}

// Remove deletes a stored photo file. Missing files are not an error.
func (s *LocalPhotoStore) Remove(ctx context.Context, storagePath string) error {
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo file: %w", err)
	}
	return nil
}

func randomPhotoName(filename string) (string, error) {
	var random [8]byte
	if _, err := rand.Read(random[:]); err != nil {
		return "", fmt.Errorf("failed to generate photo name: %w", err)
	}
	return hex.EncodeToString(random[:]) + strings.ToLower(filepath.Ext(filename)), nil
}

// photoContentType guesses from the extension; anything unrecognized is
// stored as opaque bytes.
func photoContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
