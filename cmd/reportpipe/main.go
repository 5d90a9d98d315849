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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/arkestra/reportpipe/config"
)

func main() {
	app := &cli.App{
		Name:  "reportpipe",
		Usage: "Annual report extraction and indexing pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract layout documents from source PDFs",
				Action: extractCommand,
				Flags:  join(storageFlags, outFlags, layoutFlags, extractFlags),
			},
			{
				Name:   "normalize-tables",
				Usage:  "Normalize extracted tables into per-year fact CSVs",
				Action: normalizeCommand,
				Flags:  outFlags,
			},
			{
				Name:   "chunk",
				Usage:  "Chunk narrative text into overlapping token windows",
				Action: chunkCommand,
				Flags:  join(outFlags, chunkFlags),
			},
			{
				Name:   "build-index",
				Usage:  "Create the search index collections",
				Action: buildIndexCommand,
				Flags:  join(embeddingFlags, indexFlags),
			},
			{
				Name:   "upsert",
				Usage:  "Embed and publish chunks and facts to the search indexes",
				Action: upsertCommand,
				Flags:  join(outFlags, embeddingFlags, indexFlags),
			},
			{
				Name:   "run",
				Usage:  "Run the full pipeline end to end",
				Action: runCommand,
				Flags: join(storageFlags, outFlags, layoutFlags, extractFlags,
					chunkFlags, embeddingFlags, indexFlags),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var storageFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "bucket",
		Usage:   "Cloud storage bucket holding source PDFs",
		EnvVars: []string{config.EnvStorageBucket},
	},
	&cli.StringFlag{
		Name:    "prefix",
		Usage:   "Blob name prefix to narrow the source listing",
		EnvVars: []string{config.EnvStoragePrefix},
	},
	&cli.StringFlag{
		Name:  "source-dir",
		Usage: "Local directory of PDFs, used instead of a bucket",
	},
}

var outFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Directory for pipeline artifacts",
		Value:   "out",
		EnvVars: []string{config.EnvOutDir},
	},
}

var layoutFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "gemini-api-key",
		Usage:   "API key for the document layout service",
		EnvVars: []string{config.EnvGeminiAPIKey},
	},
	&cli.StringFlag{
		Name:    "layout-model",
		Usage:   "Document layout model name",
		Value:   "gemini-2.0-flash",
		EnvVars: []string{config.EnvLayoutModel},
	},
	&cli.BoolFlag{
		Name:  "local-text",
		Usage: "Extract plain text locally instead of calling the layout service",
	},
}

var extractFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "manifest-dir",
		Usage:   "Directory for the run manifest database",
		Value:   "out/manifest",
		EnvVars: []string{config.EnvManifestDir},
	},
	&cli.BoolFlag{
		Name:  "force",
		Usage: "Re-analyze blobs even when unchanged since the last run",
	},
}

var chunkFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "target-tokens",
		Usage: "Chunk window size in tokens",
		Value: 1500,
	},
	&cli.IntFlag{
		Name:  "overlap-tokens",
		Usage: "Token overlap between consecutive chunks",
		Value: 180,
	},
}

var embeddingFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "embedding-host",
		Usage:   "Embedding service host URL",
		Value:   "http://localhost:11434/v1",
		EnvVars: []string{config.EnvEmbeddingHost},
	},
	&cli.StringFlag{
		Name:    "embedding-model",
		Usage:   "Embedding model name",
		Value:   "embeddinggemma",
		EnvVars: []string{config.EnvEmbeddingModel},
	},
}

var indexFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "qdrant-host",
		Usage:   "Vector index host",
		Value:   "localhost",
		EnvVars: []string{config.EnvQdrantHost},
	},
	&cli.IntFlag{
		Name:    "qdrant-port",
		Usage:   "Vector index gRPC port",
		Value:   6334,
		EnvVars: []string{config.EnvQdrantPort},
	},
	&cli.BoolFlag{
		Name:    "qdrant-tls",
		Usage:   "Use TLS for the vector index connection",
		EnvVars: []string{config.EnvQdrantUseTLS},
	},
	&cli.StringFlag{
		Name:    "qdrant-api-key",
		Usage:   "Vector index API key",
		EnvVars: []string{config.EnvQdrantAPIKey},
	},
	&cli.StringFlag{
		Name:    "narrative-collection",
		Usage:   "Collection name for narrative chunks",
		Value:   "narrative",
		EnvVars: []string{config.EnvNarrativeCollection},
	},
	&cli.StringFlag{
		Name:    "tables-collection",
		Usage:   "Collection name for table facts",
		Value:   "tables",
		EnvVars: []string{config.EnvTablesCollection},
	},
}

func join(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
