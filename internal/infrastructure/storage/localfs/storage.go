package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// Storage resolves read-only model artifacts under a base directory.
// Absolute keys bypass the base directory.
type Storage struct {
	basePath string
}

func New(basePath string) *Storage {
	if basePath == "" {
		basePath = "./model"
	}
	return &Storage{basePath: basePath}
}

func (s *Storage) Path(key string) string {
	if filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.basePath, key)
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat artifact: %w", err)
	}
	if info.IsDir() {
		return false, nil
	}
	return true, nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path := s.Path(key)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrMissingArtifact, "open artifact", fmt.Errorf("%s", path))
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
