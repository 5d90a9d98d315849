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


package layout

import "errors"

var (
	// ErrStoreRequired indicates no blob store was provided.
	ErrStoreRequired = errors.New("blob store required")

	// ErrAnalyzerRequired indicates no layout analyzer was provided.
	ErrAnalyzerRequired = errors.New("layout analyzer required")

	// ErrArtifactDirRequired indicates no artifact directory was provided.
	ErrArtifactDirRequired = errors.New("artifact directory required")

	// ErrNoDocuments indicates the store contained no PDF blobs.
	ErrNoDocuments = errors.New("no documents found")
)
