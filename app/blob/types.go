package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem is the local filesystem implementation (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 is an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3"
	// DriverMemory is an in-memory implementation used in tests.
	DriverMemory Driver = "memory"
)

// ErrNotFound is returned by Get and Head when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Info describes a stored blob.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Store is a thin object-store abstraction. Put replaces any existing blob
// under the key; the dining document is rewritten wholesale on every
// collection run.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Driver() Driver
}

// Compile-time interface checks
var (
	_ Store = (*FSStore)(nil)
	_ Store = (*S3Store)(nil)
	_ Store = (*MemoryStore)(nil)
)
