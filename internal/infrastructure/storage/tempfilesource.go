// Package storage handles uploaded photo files and the temp upload area
// the retention sweep cleans.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chroma-excellence/chromaqa/internal/domain/retention"
)

// TempFileSource enumerates files in the temp upload directory for the
// retention sweep. Portal sessions expire in Redis on their own, so temp
// files are the only filesystem artifacts swept.
type TempFileSource struct {
	dir string
}

func NewTempFileSource(dir string) *TempFileSource {
	return &TempFileSource{dir: dir}
}

func (s *TempFileSource) Name() string {
	return "temp_files"
}

func (s *TempFileSource) ListArtifacts(ctx context.Context) ([]retention.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	artifacts := make([]retention.Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, retention.Artifact{
			Kind:      retention.ArtifactTempFile,
			Ref:       filepath.Join(s.dir, entry.Name()),
			CreatedAt: info.ModTime(),
		})
	}
	return artifacts, nil
}

func (s *TempFileSource) Remove(ctx context.Context, artifact retention.Artifact) error {
	if err := os.Remove(artifact.Ref); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temp file %s: %w", artifact.Ref, err)
	}
	return nil
}
