// Copyright 2026 Arkestra Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger implements manifest.Repository backed by BadgerDB.
package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arkestra/reportpipe/core"
	"github.com/arkestra/reportpipe/manifest"
)

const blobStatePrefix = "blbst"

// Repository implements manifest.Repository for BadgerDB.
type Repository struct {
	backend *Backend
}

var _ manifest.Repository = (*Repository)(nil)

// newRepository is an internal constructor that returns the concrete type.
func newRepository(backend *Backend) *Repository {
	return &Repository{backend: backend}
}

// NewRepository opens a manifest database at the given path.
//
// Returns manifest.Repository interface to enforce abstraction.
func NewRepository(path string) (manifest.Repository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newRepository(backend), nil
}

// NewMemoryRepository creates an in-memory manifest for testing.
func NewMemoryRepository() (manifest.Repository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newRepository(backend), nil
}

// makeBlobStateKey generates a key for a blob state by name.
func makeBlobStateKey(blobName string) []byte {
	return []byte(fmt.Sprintf("%s:%s", blobStatePrefix, blobName))
}

// Get retrieves the state for a blob name.
// Returns nil, nil if the blob has never been processed.
func (r *Repository) Get(ctx context.Context, blobName string) (*core.BlobState, error) {
	if r.backend.IsClosed() {
		return nil, manifest.ErrStorageClosed
	}

	var state *core.BlobState
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBlobStateKey(blobName))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			state, unmarshalErr = manifest.UnmarshalBlobState(val)
			return unmarshalErr
		})
	}, false)

	return state, err
}

// Put records the state for a blob, overwriting any previous entry.
func (r *Repository) Put(ctx context.Context, state *core.BlobState) error {
	if r.backend.IsClosed() {
		return manifest.ErrStorageClosed
	}
	if state.BlobName == "" {
		return fmt.Errorf("%w: blob name required", manifest.ErrInvalidState)
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if state.ProcessedAt.IsZero() {
			state.ProcessedAt = time.Now().UTC()
		}
		key := makeBlobStateKey(state.BlobName)
		value := manifest.MarshalBlobState(state)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.backend.Close()
}
