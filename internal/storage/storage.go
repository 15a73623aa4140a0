package storage

import (
	"context"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/lifecycle"
)

// System defines the object store operations interface. Implementations
// handle the underlying mechanism (filesystem, S3) while providing a
// consistent put/get/delete-by-key capability.
type System interface {
	// Store saves data at the specified key with the given content type.
	// If the key already exists its contents are overwritten (idempotent put).
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key, contentType string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Validate checks if a key exists and is accessible.
	// Returns (true, nil) if the key exists and is readable.
	// Returns (false, nil) if the key does not exist.
	// Returns (false, error) for permission or system errors.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
