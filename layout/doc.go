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


// Package layout implements the extraction stage of the pipeline.
//
// The Extractor lists PDF blobs in the configured store, sends each to a
// layout analyzer, and writes the resulting layout documents to the
// artifact directory. A manifest of content hashes lets unchanged blobs
// be skipped on re-runs.
//
// The pdftext subpackage provides a local text-only analyzer for runs
// without access to the managed layout service.
package layout
