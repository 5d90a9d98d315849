package manifest

import (
	"context"

	"github.com/arkestra/reportpipe/core"
)

// Repository provides persistent blob processing state.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Get retrieves the state for a blob name.
	// Returns nil, nil if the blob has never been processed.
	Get(ctx context.Context, blobName string) (*core.BlobState, error)

	// Put records the state for a blob, overwriting any previous entry.
	// Sets ProcessedAt to the current time if not already set.
	Put(ctx context.Context, state *core.BlobState) error

	// Close closes the storage backend and releases resources.
	Close() error
}
