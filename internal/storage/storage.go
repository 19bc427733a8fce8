package storage

// Package storage holds the object-store abstraction used to archive
// uploaded document containers. Implementations stream to an S3-compatible
// backend and never touch local disk.

import (
	"context"
	"io"
	"time"
)

// ObjectStore archives immutable document blobs by key.
type ObjectStore interface {
	// Put streams an object to the backend under the given key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get retrieves an object's content as a streaming reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
