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

package blob

import "errors"

// ErrBlobNotFound indicates the named blob does not exist in the store.
var ErrBlobNotFound = errors.New("blob not found")

// ErrBucketRequired indicates no bucket name was configured.
var ErrBucketRequired = errors.New("bucket name required")

// ErrDirRequired indicates no source directory was configured.
var ErrDirRequired = errors.New("source directory required")
