package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/binderykit/bindery/pkg/errors"
)

// NullStore writes artifacts into throwaway temporary directories and never
// retains or serves them. Useful for tests and for CLI runs where the user
// names the output paths directly.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Create allocates a slot in a fresh temporary directory.
func (s *NullStore) Create(ctx context.Context, filename string) (*Entry, error) {
	return s.CreateIn(ctx, uuid.NewString(), filename)
}

// CreateIn allocates a slot in a temporary directory for the given ID.
func (s *NullStore) CreateIn(ctx context.Context, id, filename string) (*Entry, error) {
	if err := validateRef(id, filename); err != nil {
		return nil, err
	}
	dir := filepath.Join(os.TempDir(), "bindery-null", id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "creating temporary artifact directory")
	}
	return &Entry{ID: id, Path: filepath.Join(dir, filename)}, nil
}

// Path always reports the artifact as missing; null stores do not serve.
func (s *NullStore) Path(ctx context.Context, id, filename string) (string, error) {
	return "", errors.New(errors.ErrCodeNotFound, "artifact %s/%s does not exist", id, filename)
}

// Sweep does nothing.
func (s *NullStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)

// NullIndex discards metadata and lists nothing. Used when no Redis index
// is configured.
type NullIndex struct{}

// NewNullIndex creates a null index.
func NewNullIndex() *NullIndex {
	return &NullIndex{}
}

// Record does nothing.
func (i *NullIndex) Record(ctx context.Context, a Artifact) error {
	return nil
}

// Recent returns no artifacts.
func (i *NullIndex) Recent(ctx context.Context, n int) ([]Artifact, error) {
	return nil, nil
}

// Close does nothing.
func (i *NullIndex) Close() error {
	return nil
}

// Ensure NullIndex implements Index.
var _ Index = (*NullIndex)(nil)
