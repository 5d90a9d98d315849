package chunk

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

const (
	// DefaultTargetTokens is the window size chunks aim for.
	DefaultTargetTokens = 1500
	// DefaultOverlapTokens is how many tokens consecutive windows share.
	DefaultOverlapTokens = 180
)

// Chunker cuts a document's narrative text into overlapping token windows.
type Chunker struct {
	tokenizer Tokenizer
	target    int
	overlap   int
	logger    *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithTargetTokens sets the window size in tokens.
func WithTargetTokens(target int) Option {
	return func(c *Chunker) {
		c.target = target
	}
}

// WithOverlapTokens sets how many tokens consecutive windows share.
func WithOverlapTokens(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// WithLogger sets the logger for chunking progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) {
		c.logger = logger
	}
}

// NewChunker creates a chunker over the given tokenizer.
func NewChunker(tokenizer Tokenizer, opts ...Option) (*Chunker, error) {
	if tokenizer == nil {
		return nil, ErrTokenizerRequired
	}

	c := &Chunker{
		tokenizer: tokenizer,
		target:    DefaultTargetTokens,
		overlap:   DefaultOverlapTokens,
		logger:    slog.Default().With("component", "chunker"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.target <= 0 || c.overlap < 0 || c.overlap >= c.target {
		return nil, fmt.Errorf("%w: target %d overlap %d", ErrBadWindow, c.target, c.overlap)
	}
	return c, nil
}

// pageSpan records which token range of the combined stream a page covers.
type pageSpan struct {
	number int
	start  int
	end    int
}

// ChunkDocument produces overlapping windows over the document's cleaned
// page text. Windows never split mid-token, each window's section is the
// majority vote over the pages it covers, and IDs are fully determined by
// the source file and window position.
func (c *Chunker) ChunkDocument(doc *core.LayoutDocument) ([]core.Chunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	tokens, spans := c.preparePages(doc)
	if len(tokens) == 0 {
		c.logger.Warn("document has no narrative text", "source", doc.SourceFile)
		return nil, nil
	}
	pageSections := core.SectionByPage(doc)

	var chunks []core.Chunk
	cursor := 0
	for index := 0; cursor < len(tokens); index++ {
		end := min(cursor+c.target, len(tokens))

		content := strings.TrimSpace(c.tokenizer.Decode(tokens[cursor:end]))
		pageStart, pageEnd := coveringPages(spans, cursor, end)
		section := windowSection(spans, pageSections, cursor, end)

		chunk := core.Chunk{
			ID:         fmt.Sprintf("%s_p%03d_c%03d", doc.SourceFile, pageStart, index),
			Content:    content,
			Year:       doc.Year,
			Section:    section,
			SourceFile: doc.SourceFile,
			PageStart:  pageStart,
			PageEnd:    pageEnd,
			TokenCount: end - cursor,
		}
		if err := chunk.Validate(); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)

		if end == len(tokens) {
			break
		}
		cursor = max(end-c.overlap, cursor+1)
	}

	c.logger.Info("document chunked",
		"source", doc.SourceFile, "tokens", len(tokens), "chunks", len(chunks))
	return chunks, nil
}

// ChunkDocuments chunks a batch of documents in order.
func (c *Chunker) ChunkDocuments(docs []*core.LayoutDocument) ([]core.Chunk, error) {
	var all []core.Chunk
	for _, doc := range docs {
		chunks, err := c.ChunkDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.SourceFile, err)
		}
		all = append(all, chunks...)
	}
	return all, nil
}

// preparePages cleans each page and tokenizes it, tracking which token
// range belongs to which page. Pages after the first are encoded with a
// leading space so decoded windows keep a separator at page boundaries.
func (c *Chunker) preparePages(doc *core.LayoutDocument) ([]int, []pageSpan) {
	var tokens []int
	var spans []pageSpan

	for _, page := range doc.Pages {
		lines := core.RemoveHeaderFooterLines(strings.Split(page.Content, "\n"))
		text := core.NormalizeWhitespace(strings.Join(lines, " "))
		if text == "" {
			continue
		}
		if len(tokens) > 0 {
			text = " " + text
		}

		pageTokens := c.tokenizer.Encode(text)
		spans = append(spans, pageSpan{
			number: page.Number,
			start:  len(tokens),
			end:    len(tokens) + len(pageTokens),
		})
		tokens = append(tokens, pageTokens...)
	}
	return tokens, spans
}

// windowSection majority-votes the sections of the pages the window
// [start, end) overlaps. Windows covering no sectioned page fall back
// to "General".
func windowSection(spans []pageSpan, pageSections map[int]string, start, end int) string {
	var votes []string
	for _, span := range spans {
		if span.start < end && span.end > start {
			if s := pageSections[span.number]; s != "" {
				votes = append(votes, s)
			}
		}
	}
	if s := core.MajorityVote(votes); s != "" {
		return s
	}
	return "General"
}

// coveringPages returns the page numbers of the first and last token of
// the window [start, end).
func coveringPages(spans []pageSpan, start, end int) (int, int) {
	pageStart, pageEnd := 0, 0
	for _, span := range spans {
		if pageStart == 0 && start < span.end {
			pageStart = span.number
		}
		if end-1 >= span.start && end-1 < span.end {
			pageEnd = span.number
		}
	}
	if pageEnd == 0 {
		pageEnd = pageStart
	}
	return pageStart, pageEnd
}
