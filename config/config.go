// Copyright 2026 Arkestra Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Environment variable names read by FromEnv. CLI flags with matching EnvVars
// take precedence at the command layer; FromEnv exists for embedding the
// pipeline as a library.
const (
	EnvStorageBucket       = "REPORTPIPE_STORAGE_BUCKET"
	EnvStoragePrefix       = "REPORTPIPE_STORAGE_PREFIX"
	EnvOutDir              = "REPORTPIPE_OUT_DIR"
	EnvManifestDir         = "REPORTPIPE_MANIFEST_DIR"
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvLayoutModel         = "REPORTPIPE_LAYOUT_MODEL"
	EnvEmbeddingHost       = "REPORTPIPE_EMBEDDING_HOST"
	EnvEmbeddingModel      = "REPORTPIPE_EMBEDDING_MODEL"
	EnvQdrantHost          = "QDRANT_HOST"
	EnvQdrantPort          = "QDRANT_PORT"
	EnvQdrantUseTLS        = "QDRANT_USE_TLS"
	EnvQdrantAPIKey        = "QDRANT_API_KEY"
	EnvNarrativeCollection = "REPORTPIPE_INDEX_NARRATIVE"
	EnvTablesCollection    = "REPORTPIPE_INDEX_TABLES"
)

// Settings holds everything the pipeline stages need: storage addressing,
// managed-service endpoints and keys, and artifact locations.
type Settings struct {
	// StorageBucket is the cloud storage bucket holding source PDFs.
	StorageBucket string

	// StoragePrefix optionally narrows blob listing to a path prefix.
	StoragePrefix string

	// OutDir is the local directory for intermediate artifacts
	// (layout_*.json, facts_FY*.csv, narrative.jsonl).
	OutDir string

	// ManifestDir is the badger directory for the run manifest.
	ManifestDir string

	// GeminiAPIKey authenticates against the document-understanding service.
	// When empty, the extractor falls back to local text-only extraction.
	GeminiAPIKey string

	// LayoutModel is the document-understanding model identifier.
	LayoutModel string

	// EmbeddingHost is the base URL of the OpenAI-compatible embedding API.
	EmbeddingHost string

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string

	// QdrantHost, QdrantPort and QdrantUseTLS address the search index.
	QdrantHost   string
	QdrantPort   int
	QdrantUseTLS bool

	// QdrantAPIKey is optional; empty for unauthenticated local instances.
	QdrantAPIKey string

	// NarrativeCollection and TablesCollection name the two search indexes.
	NarrativeCollection string
	TablesCollection    string
}

// Option is a functional option for Settings.
type Option func(*Settings)

// WithOutDir overrides the artifact directory.
func WithOutDir(dir string) Option {
	return func(s *Settings) { s.OutDir = dir }
}

// WithStorage sets the source bucket and prefix.
func WithStorage(bucket, prefix string) Option {
	return func(s *Settings) {
		s.StorageBucket = bucket
		s.StoragePrefix = prefix
	}
}

// Default returns Settings with local-friendly defaults. Service endpoints
// default to localhost; credentials default to empty.
func Default() *Settings {
	return &Settings{
		OutDir:              "out",
		ManifestDir:         "out/manifest",
		LayoutModel:         "gemini-2.0-flash",
		EmbeddingHost:       "http://localhost:11434/v1",
		EmbeddingModel:      "embeddinggemma",
		QdrantHost:          "localhost",
		QdrantPort:          6334,
		NarrativeCollection: "narrative",
		TablesCollection:    "tables",
	}
}

// FromEnv returns Settings populated from environment variables on top of the
// defaults, then applies the provided options.
func FromEnv(opts ...Option) *Settings {
	s := Default()

	setString(&s.StorageBucket, EnvStorageBucket)
	setString(&s.StoragePrefix, EnvStoragePrefix)
	setString(&s.OutDir, EnvOutDir)
	setString(&s.ManifestDir, EnvManifestDir)
	setString(&s.GeminiAPIKey, EnvGeminiAPIKey)
	setString(&s.LayoutModel, EnvLayoutModel)
	setString(&s.EmbeddingHost, EnvEmbeddingHost)
	setString(&s.EmbeddingModel, EnvEmbeddingModel)
	setString(&s.QdrantHost, EnvQdrantHost)
	setString(&s.QdrantAPIKey, EnvQdrantAPIKey)
	setString(&s.NarrativeCollection, EnvNarrativeCollection)
	setString(&s.TablesCollection, EnvTablesCollection)

	if v := os.Getenv(EnvQdrantPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.QdrantPort = port
		}
	}
	if v := os.Getenv(EnvQdrantUseTLS); v != "" {
		s.QdrantUseTLS = v == "1" || strings.EqualFold(v, "true")
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Normalize brings the settings into canonical form. Embedding hosts gain the
// /v1 suffix required by OpenAI-compatible APIs when it is missing.
func (s *Settings) Normalize() {
	if s.EmbeddingHost != "" && !strings.HasSuffix(s.EmbeddingHost, "/v1") {
		s.EmbeddingHost = strings.TrimSuffix(s.EmbeddingHost, "/") + "/v1"
	}
	s.StoragePrefix = strings.TrimPrefix(s.StoragePrefix, "/")
}

// Validate checks the settings shared by every stage. It normalizes first.
// Stage-specific requirements (e.g. a bucket for extraction) are enforced by
// the stage that needs them.
func (s *Settings) Validate() error {
	s.Normalize()

	if s.OutDir == "" {
		return errors.New("config: OutDir is required")
	}
	if s.NarrativeCollection == "" {
		return errors.New("config: NarrativeCollection is required")
	}
	if s.TablesCollection == "" {
		return errors.New("config: TablesCollection is required")
	}
	if s.NarrativeCollection == s.TablesCollection {
		return errors.New("config: narrative and tables collections must differ")
	}
	if s.QdrantPort <= 0 || s.QdrantPort > 65535 {
		return errors.New("config: QdrantPort must be a valid port")
	}
	return nil
}
