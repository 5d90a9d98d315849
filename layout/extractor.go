package layout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arkestra/reportpipe/ai"
	"github.com/arkestra/reportpipe/artifact"
	"github.com/arkestra/reportpipe/blob"
	"github.com/arkestra/reportpipe/core"
	"github.com/arkestra/reportpipe/manifest"
)

// Stats summarizes a completed extraction run.
type Stats struct {
	Documents int
	Pages     int
	Tables    int
	Skipped   int
}

// Extractor runs the extraction stage over a blob store.
type Extractor struct {
	store    blob.Store
	analyzer ai.LayoutAnalyzer
	out      *artifact.Dir
	manifest manifest.Repository
	force    bool
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithForce re-analyzes blobs even when the manifest says they are unchanged.
func WithForce(force bool) Option {
	return func(e *Extractor) {
		e.force = force
	}
}

// WithManifest enables skip-unchanged tracking. Without a manifest every
// blob is analyzed on every run.
func WithManifest(repo manifest.Repository) Option {
	return func(e *Extractor) {
		e.manifest = repo
	}
}

// WithLogger sets the logger for extraction progress.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor over the given store and analyzer,
// writing layout artifacts to out.
func NewExtractor(store blob.Store, analyzer ai.LayoutAnalyzer, out *artifact.Dir, opts ...Option) (*Extractor, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if out == nil {
		return nil, ErrArtifactDirRequired
	}

	e := &Extractor{
		store:    store,
		analyzer: analyzer,
		out:      out,
		logger:   slog.Default().With("component", "layout-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run lists all PDF blobs under the prefix and extracts a layout document
// for each, skipping blobs whose content hash is unchanged since the last
// run. Processing is sequential in blob name order so output is
// deterministic and the layout service sees a bounded request rate.
func (e *Extractor) Run(ctx context.Context, prefix string) (*Stats, error) {
	names, err := e.store.ListPDFs(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing blobs: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w under prefix %q", ErrNoDocuments, prefix)
	}

	e.logger.Info("starting extraction", "blobs", len(names), "prefix", prefix)

	stats := &Stats{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.processBlob(ctx, name, stats); err != nil {
			return nil, err
		}
	}

	e.logger.Info("extraction complete",
		"documents", stats.Documents,
		"pages", stats.Pages,
		"tables", stats.Tables,
		"skipped", stats.Skipped)
	return stats, nil
}

func (e *Extractor) processBlob(ctx context.Context, name string, stats *Stats) error {
	start := time.Now()

	data, err := e.store.Download(ctx, name)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", name, err)
	}

	hash := core.HashContent(data)
	if !e.force && e.manifest != nil {
		prev, err := e.manifest.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("reading manifest for %s: %w", name, err)
		}
		if prev != nil && prev.ContentHash == hash {
			e.logger.Info("blob unchanged, skipping", "blob", name)
			stats.Skipped++
			return nil
		}
	}

	doc, err := e.analyzer.AnalyzeDocument(ctx, name, data)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("layout for %s: %w", name, err)
	}

	if err := e.out.SaveLayout(doc); err != nil {
		return err
	}

	if e.manifest != nil {
		state := &core.BlobState{
			BlobName:    name,
			ContentHash: hash,
			PageCount:   doc.PageCount,
			TableCount:  doc.TableCount,
		}
		if err := e.manifest.Put(ctx, state); err != nil {
			return fmt.Errorf("updating manifest for %s: %w", name, err)
		}
	}

	stats.Documents++
	stats.Pages += doc.PageCount
	stats.Tables += doc.TableCount

	e.logger.Info("document extracted",
		"blob", name,
		"pages", doc.PageCount,
		"tables", doc.TableCount,
		"elapsed", time.Since(start))
	return nil
}
