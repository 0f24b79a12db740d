// Package store manages generated booklet artifacts.
//
// Artifacts are the output files of an imposition run (aggregated booklets,
// per-signature booklets, previews). The file store keeps each run's files
// under an opaque ID inside an artifact directory and deletes them once the
// retention window has passed. An optional Redis-backed index records
// artifact metadata with a matching TTL so the web UI can list recent runs.
package store

import (
	"context"
	"time"
)

// DefaultRetention is how long generated artifacts are kept before a sweep
// removes them.
const DefaultRetention = 24 * time.Hour

// Artifact is the metadata of one generated output file.
type Artifact struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is a writable artifact slot allocated by a store. The caller writes
// the output file to Path.
type Entry struct {
	ID   string
	Path string
}

// Store places and serves artifact files.
type Store interface {
	// Create allocates a slot for a new artifact file with the given
	// filename, returning its ID and the path to write to. Multiple
	// files may be created under the same ID via CreateIn.
	Create(ctx context.Context, filename string) (*Entry, error)

	// CreateIn allocates an additional file under an existing ID.
	CreateIn(ctx context.Context, id, filename string) (*Entry, error)

	// Path resolves an artifact file for serving. Returns NOT_FOUND if
	// the artifact does not exist and INVALID_INPUT for malformed IDs or
	// filenames (path traversal attempts and the like).
	Path(ctx context.Context, id, filename string) (string, error)

	// Sweep deletes artifacts older than the retention window and
	// returns how many were removed.
	Sweep(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// Index records artifact metadata for listings. Implementations are
// expected to expire entries on their own after the retention window.
type Index interface {
	// Record stores metadata for a generated artifact.
	Record(ctx context.Context, a Artifact) error

	// Recent returns up to n artifacts, newest first. Expired entries
	// are skipped.
	Recent(ctx context.Context, n int) ([]Artifact, error)

	// Close releases any resources held by the index.
	Close() error
}
