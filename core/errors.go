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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidLayout indicates a LayoutDocument failed validation.
	ErrInvalidLayout = errors.New("invalid layout document")

	// ErrEmptyBlobName indicates the BlobName field is empty.
	ErrEmptyBlobName = errors.New("blob name cannot be empty")

	// ErrEmptySourceFile indicates the SourceFile field is empty.
	ErrEmptySourceFile = errors.New("source file cannot be empty")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyChunkContent indicates the chunk Content field is empty.
	ErrEmptyChunkContent = errors.New("chunk content cannot be empty")

	// ErrInvalidPageRange indicates PageEnd precedes PageStart.
	ErrInvalidPageRange = errors.New("page end cannot precede page start")

	// ErrInvalidFactRow indicates a FactRow failed validation.
	ErrInvalidFactRow = errors.New("invalid fact row")

	// ErrEmptyMetric indicates the fact Metric field is empty.
	ErrEmptyMetric = errors.New("metric cannot be empty")
)
