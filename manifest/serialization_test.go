package manifest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

func TestBlobStateRoundTrip(t *testing.T) {
	state := &core.BlobState{
		BlobName:    "reports/Company_FY2024.pdf",
		ContentHash: 0xdeadbeefcafe,
		ProcessedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		PageCount:   42,
		TableCount:  7,
	}

	data := MarshalBlobState(state)
	got, err := UnmarshalBlobState(data)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestUnmarshalBlobState_Truncated(t *testing.T) {
	state := &core.BlobState{
		BlobName:    "a.pdf",
		ContentHash: 1,
		ProcessedAt: time.Now().UTC().Truncate(time.Microsecond),
		PageCount:   1,
	}
	data := MarshalBlobState(state)

	_, err := UnmarshalBlobState(data[:2])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerializationFailed))
}
