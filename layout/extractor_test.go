package layout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/ai/mock"
	"github.com/arkestra/reportpipe/artifact"
	"github.com/arkestra/reportpipe/blob/fsdir"
	badgermanifest "github.com/arkestra/reportpipe/manifest/badger"
)

func newSourceDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return root
}

func TestRun(t *testing.T) {
	root := newSourceDir(t, map[string][]byte{
		"a_FY2024.pdf": []byte("first report"),
		"b_FY2023.pdf": []byte("second report"),
	})
	store, err := fsdir.NewStore(root)
	require.NoError(t, err)
	defer store.Close()

	out, err := artifact.NewDir(t.TempDir())
	require.NoError(t, err)

	analyzer := mock.NewMockAnalyzer()
	extractor, err := NewExtractor(store, analyzer, out)
	require.NoError(t, err)

	stats, err := extractor.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 2, analyzer.CallCount())

	docs, err := out.LoadLayouts()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a_FY2024.pdf", docs[0].SourceFile)
	assert.Equal(t, "FY2023", docs[1].Year)
}

func TestRun_SkipsUnchanged(t *testing.T) {
	root := newSourceDir(t, map[string][]byte{
		"a_FY2024.pdf": []byte("stable content"),
	})
	store, err := fsdir.NewStore(root)
	require.NoError(t, err)
	defer store.Close()

	out, err := artifact.NewDir(t.TempDir())
	require.NoError(t, err)

	repo, err := badgermanifest.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	analyzer := mock.NewMockAnalyzer()
	extractor, err := NewExtractor(store, analyzer, out, WithManifest(repo))
	require.NoError(t, err)

	stats, err := extractor.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)

	stats, err = extractor.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, analyzer.CallCount())
}

func TestRun_ForceReanalyzes(t *testing.T) {
	root := newSourceDir(t, map[string][]byte{
		"a_FY2024.pdf": []byte("stable content"),
	})
	store, err := fsdir.NewStore(root)
	require.NoError(t, err)
	defer store.Close()

	out, err := artifact.NewDir(t.TempDir())
	require.NoError(t, err)

	repo, err := badgermanifest.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	analyzer := mock.NewMockAnalyzer()
	extractor, err := NewExtractor(store, analyzer, out,
		WithManifest(repo), WithForce(true))
	require.NoError(t, err)

	_, err = extractor.Run(context.Background(), "")
	require.NoError(t, err)
	stats, err := extractor.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 2, analyzer.CallCount())
}

func TestRun_EmptyStore(t *testing.T) {
	store, err := fsdir.NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	out, err := artifact.NewDir(t.TempDir())
	require.NoError(t, err)

	extractor, err := NewExtractor(store, mock.NewMockAnalyzer(), out)
	require.NoError(t, err)

	_, err = extractor.Run(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestNewExtractor_Validation(t *testing.T) {
	out, err := artifact.NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = NewExtractor(nil, mock.NewMockAnalyzer(), out)
	assert.ErrorIs(t, err, ErrStoreRequired)

	store, err := fsdir.NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = NewExtractor(store, nil, out)
	assert.ErrorIs(t, err, ErrAnalyzerRequired)

	_, err = NewExtractor(store, mock.NewMockAnalyzer(), nil)
	assert.ErrorIs(t, err, ErrArtifactDirRequired)
}
