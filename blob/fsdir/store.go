package fsdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arkestra/reportpipe/blob"
)

// Store implements blob.Store over a local directory tree.
// Blob names are slash-separated paths relative to the root.
type Store struct {
	root string
}

// newStore is an internal constructor that returns the concrete type.
func newStore(root string) (*Store, error) {
	if root == "" {
		return nil, blob.ErrDirRequired
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", blob.ErrDirRequired, root)
	}
	return &Store{root: root}, nil
}

// NewStore creates a store rooted at the given directory.
//
// Returns blob.Store interface to enforce abstraction.
func NewStore(root string) (blob.Store, error) {
	return newStore(root)
}

// ListPDFs walks the tree and returns relative paths of .pdf files,
// sorted lexicographically.
func (s *Store) ListPDFs(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if prefix == "" || strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	sort.Strings(names)
	return names, nil
}

// Download reads the named file relative to the root.
func (s *Store) Download(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", blob.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Close is a no-op for the filesystem store.
func (s *Store) Close() error {
	return nil
}
