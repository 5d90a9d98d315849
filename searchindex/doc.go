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


// Package searchindex publishes chunks and facts to the vector search
// indexes.
//
// Two collections are maintained: one for narrative chunks and one for
// table facts. The Upserter embeds records, assigns deterministic point
// IDs derived from record IDs, and writes in batches capped at
// MaxBatchSize so re-runs converge to the same index state instead of
// duplicating points.
package searchindex
