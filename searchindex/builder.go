package searchindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arkestra/reportpipe/ai"
)

// Builder provisions the search index collections ahead of upserts.
type Builder struct {
	writer    PointWriter
	embedder  ai.Embedder
	narrative string
	tables    string
	logger    *slog.Logger
}

// NewBuilder creates a builder for the named collections.
func NewBuilder(writer PointWriter, embedder ai.Embedder, narrative, tables string) (*Builder, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &Builder{
		writer:    writer,
		embedder:  embedder,
		narrative: narrative,
		tables:    tables,
		logger:    slog.Default().With("component", "index-builder"),
	}, nil
}

// EnsureIndexes creates both collections if missing. The vector dimension
// is probed from the embedder so collection setup and embedding model can
// never drift apart.
func (b *Builder) EnsureIndexes(ctx context.Context) error {
	probe, err := b.embedder.EmbedText(ctx, "dimension probe")
	if err != nil {
		return fmt.Errorf("probing embedding dimension: %w", err)
	}
	dim := uint64(len(probe))

	for _, name := range []string{b.narrative, b.tables} {
		if err := b.writer.EnsureCollection(ctx, name, dim); err != nil {
			return err
		}
	}

	b.logger.Info("indexes ready",
		"narrative", b.narrative, "tables", b.tables, "dim", dim)
	return nil
}
