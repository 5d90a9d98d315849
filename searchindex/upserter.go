package searchindex

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/qdrant/go-client/qdrant"

	"github.com/arkestra/reportpipe/ai"
	"github.com/arkestra/reportpipe/core"
)

const (
	// MaxBatchSize caps how many points a single upsert request carries.
	MaxBatchSize = 500

	defaultEmbedBatchSize = 32
	defaultEmbedWorkers   = 4
)

// PointWriter is the slice of the index client the upserter needs.
type PointWriter interface {
	EnsureCollection(ctx context.Context, name string, dim uint64) error
	UpsertPoints(ctx context.Context, collection string, points []*qdrant.PointStruct) error
}

// Upserter embeds records and publishes them to the search indexes.
type Upserter struct {
	writer    PointWriter
	embedder  ai.Embedder
	narrative string
	tables    string

	pool       *ants.Pool
	embedBatch int
	logger     *slog.Logger

	ensured map[string]bool
}

// UpserterOption configures an Upserter.
type UpserterOption func(*Upserter)

// WithCollections sets the narrative and tables collection names.
func WithCollections(narrative, tables string) UpserterOption {
	return func(u *Upserter) {
		u.narrative = narrative
		u.tables = tables
	}
}

// WithEmbedBatchSize sets how many texts go to the embedder per request.
func WithEmbedBatchSize(size int) UpserterOption {
	return func(u *Upserter) {
		u.embedBatch = size
	}
}

// WithUpsertLogger sets the logger for upsert progress.
func WithUpsertLogger(logger *slog.Logger) UpserterOption {
	return func(u *Upserter) {
		u.logger = logger
	}
}

// NewUpserter creates an upserter publishing through the given writer.
func NewUpserter(writer PointWriter, embedder ai.Embedder, opts ...UpserterOption) (*Upserter, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	u := &Upserter{
		writer:     writer,
		embedder:   embedder,
		narrative:  "narrative",
		tables:     "tables",
		embedBatch: defaultEmbedBatchSize,
		logger:     slog.Default().With("component", "index-upserter"),
		ensured:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(u)
	}

	pool, err := ants.NewPool(defaultEmbedWorkers)
	if err != nil {
		return nil, fmt.Errorf("creating embed worker pool: %w", err)
	}
	u.pool = pool
	return u, nil
}

// Close releases the embed worker pool.
func (u *Upserter) Close() {
	u.pool.Release()
}

// UpsertChunks publishes narrative chunks to the narrative collection.
// Returns the number of points written.
func (u *Upserter) UpsertChunks(ctx context.Context, chunks []core.Chunk) (int, error) {
	total := 0
	for start := 0; start < len(chunks); start += MaxBatchSize {
		batch := chunks[start:min(start+MaxBatchSize, len(chunks))]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].Content
		}
		vectors, err := u.embedAll(ctx, texts)
		if err != nil {
			return total, err
		}

		points := make([]*qdrant.PointStruct, len(batch))
		for i := range batch {
			c := &batch[i]
			points[i] = &qdrant.PointStruct{
				Id:      pointID(u.narrative, c.ID),
				Vectors: qdrant.NewVectors(vectors[i]...),
				Payload: qdrant.NewValueMap(map[string]any{
					"id":         c.ID,
					"content":    c.Content,
					"year":       c.Year,
					"section":    c.Section,
					"sourceFile": c.SourceFile,
					"pageStart":  c.PageStart,
					"pageEnd":    c.PageEnd,
				}),
			}
		}

		if err := u.writeBatch(ctx, u.narrative, points); err != nil {
			return total, err
		}
		total += len(points)
	}

	u.logger.Info("chunks upserted", "collection", u.narrative, "points", total)
	return total, nil
}

// UpsertFacts publishes table facts to the tables collection.
// Returns the number of points written.
func (u *Upserter) UpsertFacts(ctx context.Context, facts []core.FactRow) (int, error) {
	total := 0
	for start := 0; start < len(facts); start += MaxBatchSize {
		batch := facts[start:min(start+MaxBatchSize, len(facts))]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = factEmbedText(&batch[i])
		}
		vectors, err := u.embedAll(ctx, texts)
		if err != nil {
			return total, err
		}

		points := make([]*qdrant.PointStruct, len(batch))
		for i := range batch {
			f := &batch[i]
			payload := map[string]any{
				"id":            f.ID,
				"year":          f.Year,
				"statementType": string(f.StatementType),
				"section":       f.Section,
				"metric":        f.Metric,
				"unit":          f.Unit,
				"sourceFile":    f.SourceFile,
				"page":          f.Page,
			}
			if f.Value != nil {
				payload["value"] = *f.Value
			}
			points[i] = &qdrant.PointStruct{
				Id:      pointID(u.tables, f.ID),
				Vectors: qdrant.NewVectors(vectors[i]...),
				Payload: qdrant.NewValueMap(payload),
			}
		}

		if err := u.writeBatch(ctx, u.tables, points); err != nil {
			return total, err
		}
		total += len(points)
	}

	u.logger.Info("facts upserted", "collection", u.tables, "points", total)
	return total, nil
}

func (u *Upserter) writeBatch(ctx context.Context, collection string, points []*qdrant.PointStruct) error {
	if len(points) == 0 {
		return nil
	}

	if !u.ensured[collection] {
		dim := uint64(len(points[0].Vectors.GetVector().GetDense().GetData()))
		if err := u.writer.EnsureCollection(ctx, collection, dim); err != nil {
			return err
		}
		u.ensured[collection] = true
	}

	return u.writer.UpsertPoints(ctx, collection, points)
}

// embedAll embeds texts in sub-batches on the worker pool, preserving
// input order in the returned vectors.
func (u *Upserter) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(texts); start += u.embedBatch {
		start := start
		end := min(start+u.embedBatch, len(texts))

		wg.Add(1)
		err := u.pool.Submit(func() {
			defer wg.Done()

			batch, err := u.embedder.EmbedTexts(ctx, texts[start:end])
			if err == nil && len(batch) != end-start {
				err = fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingMismatch, len(batch), end-start)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			copy(vectors[start:end], batch)
		})
		if err != nil {
			wg.Done()
			return nil, fmt.Errorf("submitting embed batch: %w", err)
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// pointID derives a stable UUID point ID from a record ID so repeated
// upserts of the same record overwrite instead of duplicating.
func pointID(collection, recordID string) *qdrant.PointId {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("reportpipe://"+collection+"/"+recordID))
	return qdrant.NewID(id.String())
}

// factEmbedText renders a fact as a short sentence for embedding.
func factEmbedText(f *core.FactRow) string {
	parts := []string{f.Year, f.Metric}
	if f.Value != nil {
		parts = append(parts, strconv.FormatFloat(*f.Value, 'f', -1, 64))
	}
	if f.Unit != "" {
		parts = append(parts, f.Unit)
	}
	if f.StatementType != "" && f.StatementType != core.StatementUnknown {
		parts = append(parts, string(f.StatementType))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
