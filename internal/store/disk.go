package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore persists uploaded files under a single directory, served
// read-only by the static file route.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the reader's content under the given filename and returns
// the full path on disk.
func (s *DiskStore) Save(name string, src io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file.
func (s *DiskStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// Dir returns the directory files are stored in.
func (s *DiskStore) Dir() string {
	return s.dir
}
