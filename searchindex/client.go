package searchindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"
)

// ClientConfig holds connection settings for the vector index.
type ClientConfig struct {
	Host   string
	Port   int
	UseTLS bool
	APIKey string
}

// Client wraps the vector index connection and collection management.
type Client struct {
	qdrant *qdrant.Client
	logger *slog.Logger
}

// NewClient connects to the vector index.
func NewClient(config ClientConfig) (*Client, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   config.Host,
		Port:   config.Port,
		UseTLS: config.UseTLS,
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to vector index: %w", err)
	}

	return &Client{
		qdrant: client,
		logger: slog.Default().With("component", "index-client", "host", config.Host),
	}, nil
}

// EnsureCollection creates the collection with cosine distance if it does
// not already exist. Existing collections are left untouched.
func (c *Client) EnsureCollection(ctx context.Context, name string, dim uint64) error {
	exists, err := c.qdrant.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", name, err)
	}
	if exists {
		return nil
	}

	err = c.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dim,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}

	c.logger.Info("collection created", "collection", name, "dim", dim)
	return nil
}

// UpsertPoints writes points to a collection, waiting for the write to
// be applied so a following search sees them.
func (c *Client) UpsertPoints(ctx context.Context, collection string, points []*qdrant.PointStruct) error {
	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upserting %d points into %s: %w", len(points), collection, err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.qdrant.Close()
}
