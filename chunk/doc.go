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


// Package chunk splits narrative page text into overlapping token windows
// sized for retrieval.
//
// Pages are cleaned of running headers and footers, tokenized, and cut
// into windows of a target token length with a fixed token overlap
// between consecutive windows. Chunk IDs encode the source document,
// starting page, and window index, so re-chunking the same document
// always reproduces the same IDs.
package chunk
