// Package storage stores uploaded images on a named disk.
//
// Two drivers are available:
//   - "local"  local filesystem, served by the API under /storage/
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2)
//
// Rows keep the disk-relative path; URL turns it into a public link at
// render time, so switching STORAGE_DISK does not rewrite the database.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("storage: file not found")

// Disk is the driver interface.
type Disk interface {
	// Put writes r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get opens the file at path. The caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	Exists(ctx context.Context, path string) (bool, error)

	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
