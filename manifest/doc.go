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


// Package manifest tracks which source blobs have already been processed.
//
// The extraction stage records a BlobState per processed blob, keyed by
// blob name and carrying the content hash. On later runs a blob whose
// hash is unchanged is skipped, so re-running the pipeline only pays
// for documents that actually changed.
//
// # Constructor Return Type Pattern
//
// Public constructors return the Repository interface rather than a
// concrete type:
//
//	repo, err := badger.NewRepository(path)  // returns manifest.Repository
//
// This keeps callers decoupled from the BadgerDB backend and lets tests
// substitute the in-memory variant without modification.
package manifest
