package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists uploaded project files and returns the stored path.
type Store interface {
	Save(filename string, r io.Reader) (string, error)
}

// DiskStore writes uploads to a local directory. Stored names are
// uuid-prefixed so client filenames can never collide or escape the
// upload directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams r into the store and returns the relative path.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path, nil
}
