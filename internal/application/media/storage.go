package media

import "context"

// ObjectStorage stores and removes media binaries. Keys are
// storage-relative paths; the caller derives the public URL from its
// own configuration.
type ObjectStorage interface {
	// PutObject stores data under the given key, overwriting any
	// existing object
	PutObject(ctx context.Context, key, contentType string, data []byte) error

	// DeleteObject removes the object under the given key. Deleting a
	// missing object is not an error.
	DeleteObject(ctx context.Context, key string) error
}
