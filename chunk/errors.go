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


package chunk

import "errors"

var (
	// ErrTokenizerRequired indicates no tokenizer was provided.
	ErrTokenizerRequired = errors.New("tokenizer required")

	// ErrBadWindow indicates a window configuration where the overlap is
	// not smaller than the target size.
	ErrBadWindow = errors.New("overlap must be smaller than target window")
)
