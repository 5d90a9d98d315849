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


// Package artifact manages the on-disk intermediate outputs of the pipeline.
//
// Each stage reads the previous stage's artifacts from a single output
// directory: layout documents as layout_<stem>.json, narrative chunks as
// a JSONL file, and fact tables as per-year CSV files. Keeping stages
// decoupled through files lets any stage be re-run in isolation.
package artifact
