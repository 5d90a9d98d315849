package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoStages indicates a runner was started without stages.
var ErrNoStages = errors.New("no stages configured")

// Stage is one unit of pipeline work.
type Stage interface {
	Name() string
	Run(ctx context.Context) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Func      func(ctx context.Context) error
}

func (s StageFunc) Name() string {
	return s.StageName
}

func (s StageFunc) Run(ctx context.Context) error {
	return s.Func(ctx)
}

// Runner executes stages sequentially, stopping at the first failure.
type Runner struct {
	stages []Stage
	logger *slog.Logger
}

// NewRunner creates a runner over the given stages.
func NewRunner(stages ...Stage) (*Runner, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	return &Runner{
		stages: stages,
		logger: slog.Default().With("component", "pipeline"),
	}, nil
}

// Run executes every stage in order. A stage failure aborts the run and
// is returned wrapped with the stage name.
func (r *Runner) Run(ctx context.Context) error {
	runStart := time.Now()
	r.logger.Info("pipeline starting", "stages", len(r.stages))

	for i, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		r.logger.Info("stage starting", "stage", stage.Name(), "position", i+1)

		if err := stage.Run(ctx); err != nil {
			r.logger.Error("stage failed", "stage", stage.Name(), "err", err)
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		r.logger.Info("stage complete", "stage", stage.Name(), "elapsed", time.Since(start))
	}

	r.logger.Info("pipeline complete", "elapsed", time.Since(runStart))
	return nil
}
