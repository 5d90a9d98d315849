package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

func sampleLayout(blobName string) *core.LayoutDocument {
	doc := core.NewLayoutDocument(blobName)
	doc.Pages = []core.Page{{Number: 1, Content: "Revenue grew."}}
	doc.PageCount = 1
	return doc
}

func TestSaveAndLoadLayouts(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, dir.SaveLayout(sampleLayout("reports/b_FY2023.pdf")))
	require.NoError(t, dir.SaveLayout(sampleLayout("reports/a_FY2024.pdf")))

	docs, err := dir.LoadLayouts()
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Sorted by file name, not insertion order.
	assert.Equal(t, "a_FY2024.pdf", docs[0].SourceFile)
	assert.Equal(t, "b_FY2023.pdf", docs[1].SourceFile)
	assert.Equal(t, "FY2024", docs[0].Year)
}

func TestWriteAndReadChunks(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)

	chunks := []core.Chunk{
		{
			ID:         "a_FY2024.pdf_p001_c000",
			Content:    "Revenue grew strongly.",
			Year:       "FY2024",
			Section:    "MD&A",
			SourceFile: "a_FY2024.pdf",
			PageStart:  1,
			PageEnd:    2,
			TokenCount: 4,
		},
		{
			ID:         "a_FY2024.pdf_p002_c001",
			Content:    "Risks remain.",
			Year:       "FY2024",
			Section:    "Risk Factors",
			SourceFile: "a_FY2024.pdf",
			PageStart:  2,
			PageEnd:    2,
			TokenCount: 2,
		},
	}
	require.NoError(t, dir.WriteChunks(chunks))

	got, err := dir.ReadChunks()
	require.NoError(t, err)
	assert.Equal(t, chunks, got)
}

func TestWriteChunks_RejectsInvalid(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)

	err = dir.WriteChunks([]core.Chunk{{ID: "x", Content: ""}})
	assert.Error(t, err)
}

func TestFactsPaths(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, dir.FactsPath("FY2024"), "facts_FY2024.csv")

	paths, err := dir.FactsPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}
