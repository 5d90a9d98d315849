package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/arkestra/reportpipe/ai"
	"github.com/arkestra/reportpipe/ai/gemini"
	"github.com/arkestra/reportpipe/ai/openai"
	"github.com/arkestra/reportpipe/artifact"
	"github.com/arkestra/reportpipe/blob"
	"github.com/arkestra/reportpipe/blob/fsdir"
	"github.com/arkestra/reportpipe/blob/gcs"
	"github.com/arkestra/reportpipe/chunk"
	"github.com/arkestra/reportpipe/config"
	"github.com/arkestra/reportpipe/core"
	"github.com/arkestra/reportpipe/layout"
	"github.com/arkestra/reportpipe/layout/pdftext"
	badgermanifest "github.com/arkestra/reportpipe/manifest/badger"
	"github.com/arkestra/reportpipe/pipeline"
	"github.com/arkestra/reportpipe/searchindex"
	"github.com/arkestra/reportpipe/tables"
)

func extractCommand(c *cli.Context) error {
	ctx := context.Background()
	return runExtract(ctx, c)
}

func normalizeCommand(c *cli.Context) error {
	return runNormalize(c)
}

func chunkCommand(c *cli.Context) error {
	return runChunk(c)
}

func buildIndexCommand(c *cli.Context) error {
	ctx := context.Background()

	settings, err := indexSettings(c)
	if err != nil {
		return err
	}

	client, err := newIndexClient(settings)
	if err != nil {
		return err
	}
	defer client.Close()

	embedder, err := newEmbedder(settings)
	if err != nil {
		return err
	}

	builder, err := searchindex.NewBuilder(client, embedder,
		settings.NarrativeCollection, settings.TablesCollection)
	if err != nil {
		return err
	}
	return builder.EnsureIndexes(ctx)
}

func upsertCommand(c *cli.Context) error {
	ctx := context.Background()
	return runUpsert(ctx, c)
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	runner, err := pipeline.NewRunner(
		pipeline.StageFunc{StageName: "extract", Func: func(ctx context.Context) error {
			return runExtract(ctx, c)
		}},
		pipeline.StageFunc{StageName: "normalize-tables", Func: func(ctx context.Context) error {
			return runNormalize(c)
		}},
		pipeline.StageFunc{StageName: "chunk", Func: func(ctx context.Context) error {
			return runChunk(c)
		}},
		pipeline.StageFunc{StageName: "build-index", Func: func(ctx context.Context) error {
			return buildIndexCommand(c)
		}},
		pipeline.StageFunc{StageName: "upsert", Func: func(ctx context.Context) error {
			return runUpsert(ctx, c)
		}},
	)
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}

func runExtract(ctx context.Context, c *cli.Context) error {
	store, err := newBlobStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	analyzer, err := newAnalyzer(ctx, c)
	if err != nil {
		return err
	}

	out, err := artifact.NewDir(c.String("out"))
	if err != nil {
		return err
	}

	opts := []layout.Option{layout.WithForce(c.Bool("force"))}
	if dir := c.String("manifest-dir"); dir != "" {
		repo, err := badgermanifest.NewRepository(dir)
		if err != nil {
			return fmt.Errorf("opening manifest: %w", err)
		}
		defer repo.Close()
		opts = append(opts, layout.WithManifest(repo))
	}

	extractor, err := layout.NewExtractor(store, analyzer, out, opts...)
	if err != nil {
		return err
	}

	_, err = extractor.Run(ctx, c.String("prefix"))
	return err
}

func runNormalize(c *cli.Context) error {
	out, err := artifact.NewDir(c.String("out"))
	if err != nil {
		return err
	}

	docs, err := out.LoadLayouts()
	if err != nil {
		return err
	}

	normalizer := tables.NewNormalizer()
	var all []core.FactRow
	for _, doc := range docs {
		facts, err := normalizer.ExtractFacts(doc)
		if err != nil {
			return err
		}
		all = append(all, facts...)
	}

	for year, facts := range tables.GroupByYear(all) {
		if err := tables.WriteFactsCSV(out.FactsPath(year), facts); err != nil {
			return err
		}
	}

	slog.Info("tables normalized", "documents", len(docs), "facts", len(all))
	return nil
}

func runChunk(c *cli.Context) error {
	out, err := artifact.NewDir(c.String("out"))
	if err != nil {
		return err
	}

	docs, err := out.LoadLayouts()
	if err != nil {
		return err
	}

	tokenizer, err := chunk.NewTokenizer()
	if err != nil {
		return err
	}
	chunker, err := chunk.NewChunker(tokenizer,
		chunk.WithTargetTokens(c.Int("target-tokens")),
		chunk.WithOverlapTokens(c.Int("overlap-tokens")))
	if err != nil {
		return err
	}

	chunks, err := chunker.ChunkDocuments(docs)
	if err != nil {
		return err
	}
	return out.WriteChunks(chunks)
}

func runUpsert(ctx context.Context, c *cli.Context) error {
	settings, err := indexSettings(c)
	if err != nil {
		return err
	}

	out, err := artifact.NewDir(settings.OutDir)
	if err != nil {
		return err
	}

	client, err := newIndexClient(settings)
	if err != nil {
		return err
	}
	defer client.Close()

	embedder, err := newEmbedder(settings)
	if err != nil {
		return err
	}

	upserter, err := searchindex.NewUpserter(client, embedder,
		searchindex.WithCollections(
			settings.NarrativeCollection, settings.TablesCollection))
	if err != nil {
		return err
	}
	defer upserter.Close()

	chunks, err := out.ReadChunks()
	if err != nil {
		return err
	}
	if _, err := upserter.UpsertChunks(ctx, chunks); err != nil {
		return err
	}

	paths, err := out.FactsPaths()
	if err != nil {
		return err
	}
	for _, path := range paths {
		facts, err := tables.ReadFactsCSV(path)
		if err != nil {
			return err
		}
		if _, err := upserter.UpsertFacts(ctx, facts); err != nil {
			return err
		}
	}
	return nil
}

func newBlobStore(ctx context.Context, c *cli.Context) (blob.Store, error) {
	if bucket := c.String("bucket"); bucket != "" {
		return gcs.NewStore(ctx, bucket)
	}
	if dir := c.String("source-dir"); dir != "" {
		return fsdir.NewStore(dir)
	}
	return nil, fmt.Errorf("either --bucket or --source-dir is required")
}

func newAnalyzer(ctx context.Context, c *cli.Context) (ai.LayoutAnalyzer, error) {
	apiKey := c.String("gemini-api-key")
	if c.Bool("local-text") || apiKey == "" {
		if apiKey == "" && !c.Bool("local-text") {
			slog.Warn("no layout service API key, falling back to local text extraction")
		}
		return pdftext.NewAnalyzer(), nil
	}

	aiConfig := ai.NewConfig(
		ai.WithGeminiAPIKey(apiKey),
		ai.WithLayoutModel(c.String("layout-model")),
	)
	return gemini.NewAnalyzer(ctx, aiConfig)
}

// indexSettings collects the flags shared by the index-facing commands
// into validated settings.
func indexSettings(c *cli.Context) (*config.Settings, error) {
	s := config.Default()
	if out := c.String("out"); out != "" {
		s.OutDir = out
	}
	s.EmbeddingHost = c.String("embedding-host")
	s.EmbeddingModel = c.String("embedding-model")
	s.QdrantHost = c.String("qdrant-host")
	s.QdrantPort = c.Int("qdrant-port")
	s.QdrantUseTLS = c.Bool("qdrant-tls")
	s.QdrantAPIKey = c.String("qdrant-api-key")
	s.NarrativeCollection = c.String("narrative-collection")
	s.TablesCollection = c.String("tables-collection")

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newEmbedder(s *config.Settings) (ai.Embedder, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(s.EmbeddingHost),
		ai.WithEmbeddingModel(s.EmbeddingModel),
	)
	return openai.NewEmbedder(aiConfig)
}

func newIndexClient(s *config.Settings) (*searchindex.Client, error) {
	return searchindex.NewClient(searchindex.ClientConfig{
		Host:   s.QdrantHost,
		Port:   s.QdrantPort,
		UseTLS: s.QdrantUseTLS,
		APIKey: s.QdrantAPIKey,
	})
}
