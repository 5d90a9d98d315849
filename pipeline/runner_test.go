package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return StageFunc{
			StageName: name,
			Func: func(ctx context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	runner, err := NewRunner(stage("extract"), stage("normalize"), stage("chunk"))
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, []string{"extract", "normalize", "chunk"}, order)
}

func TestRun_AbortsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	runner, err := NewRunner(
		StageFunc{StageName: "first", Func: func(ctx context.Context) error { return boom }},
		StageFunc{StageName: "second", Func: func(ctx context.Context) error { ran = true; return nil }},
	)
	require.NoError(t, err)

	err = runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "first")
	assert.False(t, ran)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner, err := NewRunner(StageFunc{StageName: "noop", Func: func(ctx context.Context) error { return nil }})
	require.NoError(t, err)

	assert.ErrorIs(t, runner.Run(ctx), context.Canceled)
}

func TestNewRunner_NoStages(t *testing.T) {
	_, err := NewRunner()
	assert.ErrorIs(t, err, ErrNoStages)
}
