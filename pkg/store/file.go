package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/binderykit/bindery/pkg/errors"
)

// FileStore keeps artifacts on the local filesystem, one directory per
// artifact ID inside the root directory.
type FileStore struct {
	root      string
	retention time.Duration
}

// NewFileStore creates a file store rooted at dir. The directory is created
// if it does not exist. A non-positive retention falls back to
// DefaultRetention.
func NewFileStore(dir string, retention time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "creating artifact directory %s", dir)
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &FileStore{root: dir, retention: retention}, nil
}

// Create allocates a new artifact directory with a fresh ID.
func (s *FileStore) Create(ctx context.Context, filename string) (*Entry, error) {
	return s.CreateIn(ctx, uuid.NewString(), filename)
}

// CreateIn allocates a file slot under the given artifact ID.
func (s *FileStore) CreateIn(ctx context.Context, id, filename string) (*Entry, error) {
	if err := validateRef(id, filename); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "creating artifact directory %s", dir)
	}
	return &Entry{ID: id, Path: filepath.Join(dir, filename)}, nil
}

// Path resolves an existing artifact file.
func (s *FileStore) Path(ctx context.Context, id, filename string) (string, error) {
	if err := validateRef(id, filename); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, id, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeNotFound, "artifact %s/%s does not exist", id, filename)
		}
		return "", errors.Wrap(errors.ErrCodeIO, err, "resolving artifact %s/%s", id, filename)
	}
	return path, nil
}

// Sweep removes artifact directories whose modification time is older than
// the retention window.
func (s *FileStore) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "reading artifact directory %s", s.root)
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error {
	return nil
}

// validateRef rejects IDs and filenames that could escape the artifact
// directory.
func validateRef(id, filename string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid artifact id %q", id)
	}
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid artifact filename %q", filename)
	}
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
