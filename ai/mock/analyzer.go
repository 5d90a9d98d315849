package mock

import (
	"context"
	"sync/atomic"

	"github.com/arkestra/reportpipe/core"
)

// MockAnalyzer is a test double for ai.LayoutAnalyzer.
// It allows custom behavior injection via a function field.
type MockAnalyzer struct {
	// AnalyzeFunc is called by AnalyzeDocument if set.
	// If nil, a minimal single-page layout is synthesized from the input.
	AnalyzeFunc func(ctx context.Context, blobName string, data []byte) (*core.LayoutDocument, error)

	callCount atomic.Int64
}

// NewMockAnalyzer creates a mock analyzer with default synthetic behavior.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// AnalyzeDocument returns a synthetic layout unless AnalyzeFunc is set.
func (m *MockAnalyzer) AnalyzeDocument(ctx context.Context, blobName string, data []byte) (*core.LayoutDocument, error) {
	m.callCount.Add(1)

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, blobName, data)
	}

	doc := core.NewLayoutDocument(blobName)
	doc.Pages = []core.Page{{Number: 1, Content: string(data)}}
	doc.PageCount = 1
	return doc, nil
}

// CallCount returns the number of times AnalyzeDocument was called.
func (m *MockAnalyzer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockAnalyzer) Reset() {
	m.callCount.Store(0)
	m.AnalyzeFunc = nil
}
