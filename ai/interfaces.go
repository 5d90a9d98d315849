package ai

import (
	"context"

	"github.com/arkestra/reportpipe/core"
)

// Embedder generates vector embeddings from text for search indexing.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice is in input order. Batch calls are cheaper
	// than repeated EmbedText calls.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LayoutAnalyzer extracts structured layout (page text and tables) from a PDF
// via a managed document-understanding service.
type LayoutAnalyzer interface {
	// AnalyzeDocument analyzes the raw PDF bytes of blobName and returns the
	// extracted layout. The returned document carries the blob name, source
	// filename, fiscal year and page/table inventories.
	AnalyzeDocument(ctx context.Context, blobName string, data []byte) (*core.LayoutDocument, error)
}
