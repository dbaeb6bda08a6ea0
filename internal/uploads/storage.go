package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage writes an uploaded file and returns its public URL.
type Storage interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (url string, err error)
}

// LocalStorage writes under a directory that gin serves at /uploads.
type LocalStorage struct {
	Dir     string
	BaseURL string // usually "/uploads"
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: "/uploads"}, nil
}

func (s *LocalStorage) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	// filename is generated server-side, but never trust a path anyway
	filename = filepath.Base(filename)

	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + filename, nil
}
