package ports

import (
	"context"
	"io"
)

// PutObjectInput describes a single upload. Reader is consumed exactly once;
// Size must be accurate for backends that require a known length up front.
type PutObjectInput struct {
	ObjectKey   string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// PutObjectOutput reports where an upload landed. URL is the public or
// signed address callers embed in responses.
type PutObjectOutput struct {
	ObjectKey string
	Size      int64
	URL       string
}

// StorageProvider is the uniform contract over the pluggable object-storage
// backends (localfs, minio, s3, gcs). The core interacts with storage only
// through this interface; credentials and bucket names are adapter state.
type StorageProvider interface {
	Provider() string

	// EnsureBucket verifies the configured bucket/container exists,
	// creating it when the backend allows that.
	EnsureBucket(ctx context.Context) error

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error)
	DeleteObject(ctx context.Context, objectKey string) error

	// ObjectURL returns the address of a stored object without re-uploading.
	ObjectURL(ctx context.Context, objectKey string) (string, error)
}
