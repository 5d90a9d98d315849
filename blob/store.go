package blob

import "context"

// Store provides access to source report documents.
type Store interface {
	// ListPDFs returns the names of all PDF blobs under the given prefix,
	// sorted lexicographically. An empty prefix lists everything.
	ListPDFs(ctx context.Context, prefix string) ([]string, error)

	// Download returns the full content of the named blob.
	Download(ctx context.Context, name string) ([]byte, error)

	// Close releases any underlying connections.
	Close() error
}
