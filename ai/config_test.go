package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "gemini-2.0-flash", cfg.LayoutModel)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embed.internal:9100/v1"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithGeminiAPIKey("secret"),
		WithRetry(5, time.Second),
	)

	assert.Equal(t, "http://embed.internal:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithEmbeddingHost("http://localhost:11434"))

	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)

	cfg.EmbeddingHost = "http://localhost:11434/"
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	assert.NoError(t, cfg.Validate())

	cfg.EmbeddingModel = ""
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.MaxRetries = -1
	assert.Error(t, cfg.Validate())
}
