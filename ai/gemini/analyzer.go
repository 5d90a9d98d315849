package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arkestra/reportpipe/ai"
	"github.com/arkestra/reportpipe/core"
)

// ErrMalformedResponse indicates the layout service returned something that
// could not be parsed as layout JSON.
var ErrMalformedResponse = errors.New("malformed layout response")

// ErrAPIKeyRequired indicates no API key was configured.
var ErrAPIKeyRequired = errors.New("gemini API key required")

// Analyzer implements ai.LayoutAnalyzer using the Gemini API.
type Analyzer struct {
	client     *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(ctx context.Context, config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.GeminiAPIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: config.GeminiAPIKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Analyzer{
		client:     client,
		model:      config.LayoutModel,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		logger:     slog.Default().With("component", "gemini-analyzer"),
	}, nil
}

// NewAnalyzer creates a new layout analyzer using the provided configuration.
//
// Returns ai.LayoutAnalyzer interface to enforce abstraction.
func NewAnalyzer(ctx context.Context, config *ai.Config) (ai.LayoutAnalyzer, error) {
	return newAnalyzer(ctx, config)
}

// AnalyzeDocument sends the PDF inline to the layout model and parses the
// JSON response into a layout document. Rate-limited requests are retried
// with exponential backoff up to the configured bound.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, blobName string, data []byte) (*core.LayoutDocument, error) {
	a.logger.Info("analyzing document layout", "blob", blobName, "bytes", len(data))

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: data}},
				{Text: layoutPrompt},
			},
		},
	}
	contentConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var response string
	delay := a.retryDelay
	for attempt := 0; ; attempt++ {
		result, err := a.client.Models.GenerateContent(ctx, a.model, contents, contentConfig)
		if err == nil {
			response = result.Text()
			break
		}
		if attempt >= a.maxRetries || !isRateLimited(err) {
			a.logger.Error("layout analysis failed", "blob", blobName, "attempt", attempt, "err", err)
			return nil, fmt.Errorf("analyzing %s: %w", blobName, err)
		}

		a.logger.Warn("rate limited, backing off", "blob", blobName, "attempt", attempt, "delay", delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	doc, err := parseLayout(blobName, response)
	if err != nil {
		a.logger.Error("could not parse layout response", "blob", blobName, "err", err)
		return nil, err
	}

	a.logger.Info("layout extracted", "blob", blobName, "pages", doc.PageCount, "tables", doc.TableCount)
	return doc, nil
}

// isRateLimited reports whether the error is a quota/rate-limit rejection.
func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
