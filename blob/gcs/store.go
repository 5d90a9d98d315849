package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/arkestra/reportpipe/blob"
)

// Store implements blob.Store backed by a Google Cloud Storage bucket.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	logger *slog.Logger
}

// newStore is an internal constructor that returns the concrete type.
func newStore(ctx context.Context, bucket string) (*Store, error) {
	if bucket == "" {
		return nil, blob.ErrBucketRequired
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &Store{
		client: client,
		bucket: client.Bucket(bucket),
		logger: slog.Default().With("component", "gcs-store", "bucket", bucket),
	}, nil
}

// NewStore creates a store over the named bucket using ambient credentials.
//
// Returns blob.Store interface to enforce abstraction.
func NewStore(ctx context.Context, bucket string) (blob.Store, error) {
	return newStore(ctx, bucket)
}

// ListPDFs lists all .pdf objects under the prefix, sorted by name.
func (s *Store) ListPDFs(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects under %q: %w", prefix, err)
		}
		if strings.HasSuffix(strings.ToLower(attrs.Name), ".pdf") {
			names = append(names, attrs.Name)
		}
	}

	sort.Strings(names)
	s.logger.Debug("listed pdf blobs", "prefix", prefix, "count", len(names))
	return names, nil
}

// Download reads the full content of the named object.
func (s *Store) Download(ctx context.Context, name string) ([]byte, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", blob.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	s.logger.Debug("downloaded blob", "name", name, "bytes", len(data))
	return data, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
