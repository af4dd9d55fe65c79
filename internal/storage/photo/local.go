package photo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes photos to a directory on the local filesystem as
// "{key}_{filename}". Writes go to a temp file first and are renamed
// into place, so a replaced record never points at a half-written file.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the photo directory if needed and returns a
// store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, key, filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, key+"_"+filepath.Base(filename))

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp photo: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close photo: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename photo: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo %q: %w", path, err)
	}
	return nil
}
