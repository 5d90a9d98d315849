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


package manifest

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/arkestra/reportpipe/core"
)

// MarshalBlobState serializes a BlobState to bytes using the MUS format.
func MarshalBlobState(state *core.BlobState) []byte {
	size := ord.String.Size(state.BlobName) +
		varint.Uint64.Size(state.ContentHash) +
		varint.Int64.Size(state.ProcessedAt.UnixMicro()) +
		varint.Int64.Size(int64(state.PageCount)) +
		varint.Int64.Size(int64(state.TableCount))

	buf := make([]byte, size)
	n := ord.String.Marshal(state.BlobName, buf)
	n += varint.Uint64.Marshal(state.ContentHash, buf[n:])
	n += varint.Int64.Marshal(state.ProcessedAt.UnixMicro(), buf[n:])
	n += varint.Int64.Marshal(int64(state.PageCount), buf[n:])
	varint.Int64.Marshal(int64(state.TableCount), buf[n:])
	return buf
}

// UnmarshalBlobState deserializes a BlobState from bytes.
func UnmarshalBlobState(data []byte) (*core.BlobState, error) {
	name, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: blob name: %w", ErrSerializationFailed, err)
	}

	hash, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: content hash: %w", ErrSerializationFailed, err)
	}
	n += m

	processedAt, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: processed at: %w", ErrSerializationFailed, err)
	}
	n += m

	pageCount, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: page count: %w", ErrSerializationFailed, err)
	}
	n += m

	tableCount, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: table count: %w", ErrSerializationFailed, err)
	}

	return &core.BlobState{
		BlobName:    name,
		ContentHash: hash,
		ProcessedAt: time.UnixMicro(processedAt).UTC(),
		PageCount:   int(pageCount),
		TableCount:  int(tableCount),
	}, nil
}
