package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

// wordTokenizer treats each whitespace-separated word as one token.
type wordTokenizer struct {
	words map[int]string
	ids   map[string]int
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{
		words: make(map[int]string),
		ids:   make(map[string]int),
	}
}

func (w *wordTokenizer) Encode(text string) []int {
	var tokens []int
	for _, word := range strings.Fields(text) {
		id, ok := w.ids[word]
		if !ok {
			id = len(w.ids)
			w.ids[word] = id
			w.words[id] = word
		}
		tokens = append(tokens, id)
	}
	return tokens
}

func (w *wordTokenizer) Decode(tokens []int) string {
	words := make([]string, len(tokens))
	for i, id := range tokens {
		words[i] = w.words[id]
	}
	return strings.Join(words, " ")
}

func words(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(parts, " ")
}

func narrativeDoc() *core.LayoutDocument {
	doc := core.NewLayoutDocument("reports/Company_FY2024.pdf")
	doc.Pages = []core.Page{
		{Number: 1, Content: "Risk Factors\n" + words("alpha", 12) + "\nPage 1"},
		{Number: 2, Content: words("beta", 8) + "\n2"},
		{Number: 3, Content: words("gamma", 5)},
	}
	doc.PageCount = 3
	return doc
}

func TestChunkDocument_WindowsAndOverlap(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(narrativeDoc())
	require.NoError(t, err)
	// 27 tokens total ("Risk Factors" + 12 + 8 + 5), windows of 10 with
	// stride 7: [0,10) [7,17) [14,24) [21,27).
	require.Len(t, chunks, 4)

	assert.Equal(t, 10, chunks[0].TokenCount)
	assert.Equal(t, 6, chunks[3].TokenCount)

	for i := 0; i < len(chunks)-1; i++ {
		prev := strings.Fields(chunks[i].Content)
		next := strings.Fields(chunks[i+1].Content)
		assert.Equal(t, prev[len(prev)-3:], next[:3], "overlap between chunk %d and %d", i, i+1)
	}
}

func TestChunkDocument_DeterministicIDs(t *testing.T) {
	c1, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)
	c2, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)

	first, err := c1.ChunkDocument(narrativeDoc())
	require.NoError(t, err)
	second, err := c2.ChunkDocument(narrativeDoc())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Company_FY2024.pdf_p001_c000", first[0].ID)
}

func TestChunkDocument_PageSpans(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(narrativeDoc())
	require.NoError(t, err)

	assert.Equal(t, 1, chunks[0].PageStart)
	assert.Equal(t, 1, chunks[0].PageEnd)
	last := chunks[len(chunks)-1]
	assert.Equal(t, 3, last.PageEnd)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.PageStart, chunk.PageEnd)
	}
}

func TestChunkDocument_StripsHeadersAndFooters(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(50), WithOverlapTokens(5))
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(narrativeDoc())
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.NotContains(t, chunks[0].Content, "Page 1")
	assert.NotContains(t, strings.Fields(chunks[0].Content), "2")
}

func TestChunkDocument_SectionCarriesForward(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(narrativeDoc())
	require.NoError(t, err)

	assert.Equal(t, "Risk Factors", chunks[0].Section)
	// Later windows cover pages past the heading, but those pages carry
	// the section forward.
	assert.Equal(t, "Risk Factors", chunks[len(chunks)-1].Section)
}

func TestChunkDocument_SectionMajorityVote(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(30), WithOverlapTokens(5))
	require.NoError(t, err)

	doc := core.NewLayoutDocument("reports/Company_FY2024.pdf")
	doc.Pages = []core.Page{
		{Number: 1, Content: "Risk Factors " + words("alpha", 5)},
		{Number: 2, Content: "Notes to the accounts " + words("beta", 5)},
		{Number: 3, Content: words("gamma", 5)},
	}
	doc.PageCount = 3

	chunks, err := c.ChunkDocument(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	// Pages 2 and 3 sit in Notes (page 3 carries it forward), outvoting
	// the Risk Factors page the window also covers.
	assert.Equal(t, "Notes", chunks[0].Section)
}

func TestChunkDocument_DefaultSection(t *testing.T) {
	c, err := NewChunker(newWordTokenizer(), WithTargetTokens(10), WithOverlapTokens(3))
	require.NoError(t, err)

	doc := core.NewLayoutDocument("reports/Company_FY2024.pdf")
	doc.Pages = []core.Page{{Number: 1, Content: words("delta", 8)}}
	doc.PageCount = 1

	chunks, err := c.ChunkDocument(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "General", chunks[0].Section)
}

func TestChunkDocument_EmptyDocument(t *testing.T) {
	c, err := NewChunker(newWordTokenizer())
	require.NoError(t, err)

	doc := core.NewLayoutDocument("empty_FY2024.pdf")
	doc.Pages = []core.Page{{Number: 1, Content: "Page 1\n\n3"}}
	doc.PageCount = 1

	chunks, err := c.ChunkDocument(doc)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestNewChunker_Validation(t *testing.T) {
	_, err := NewChunker(nil)
	assert.ErrorIs(t, err, ErrTokenizerRequired)

	_, err = NewChunker(newWordTokenizer(), WithTargetTokens(100), WithOverlapTokens(100))
	assert.ErrorIs(t, err, ErrBadWindow)

	_, err = NewChunker(newWordTokenizer(), WithTargetTokens(0))
	assert.ErrorIs(t, err, ErrBadWindow)
}
