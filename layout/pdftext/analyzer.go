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


// Package pdftext implements ai.LayoutAnalyzer with local text extraction.
//
// It reads page text directly from the PDF and produces layout documents
// without tables. Useful for offline runs and for narrative-only
// pipelines where the managed layout service is unavailable.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dslipak/pdf"

	"github.com/arkestra/reportpipe/ai"
	"github.com/arkestra/reportpipe/core"
)

// ErrExtractionFailed indicates the PDF could not be parsed.
var ErrExtractionFailed = errors.New("pdf text extraction failed")

const extractTimeout = 2 * time.Minute

// Analyzer implements ai.LayoutAnalyzer using local PDF text extraction.
type Analyzer struct {
	logger *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer() *Analyzer {
	return &Analyzer{
		logger: slog.Default().With("component", "pdftext-analyzer"),
	}
}

// NewAnalyzer creates a local text-extraction analyzer.
//
// Returns ai.LayoutAnalyzer interface to enforce abstraction.
func NewAnalyzer() ai.LayoutAnalyzer {
	return newAnalyzer()
}

// AnalyzeDocument extracts plain text per page. The produced layout has
// no tables; the normalization stage will simply find nothing to do.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, blobName string, data []byte) (*core.LayoutDocument, error) {
	pages, err := protectExtract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtractionFailed, blobName, err)
	}

	doc := core.NewLayoutDocument(blobName)
	for i, content := range pages {
		doc.Pages = append(doc.Pages, core.Page{
			Number:  i + 1,
			Content: core.NormalizeWhitespace(content),
		})
	}
	doc.PageCount = len(doc.Pages)

	a.logger.Info("text extracted", "blob", blobName, "pages", doc.PageCount)
	return doc, nil
}

// protectExtract runs extraction on a separate goroutine so a panic or a
// hang inside the PDF parser cannot take down the pipeline. Malformed
// PDFs in the wild trigger both.
func protectExtract(ctx context.Context, data []byte) ([]string, error) {
	type result struct {
		pages []string
		err   error
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		pages, err := extractPages(data)
		done <- result{pages: pages, err: err}
	}()

	select {
	case r := <-done:
		return r.pages, r.err
	case <-time.After(extractTimeout):
		return nil, errors.New("extraction timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func extractPages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
