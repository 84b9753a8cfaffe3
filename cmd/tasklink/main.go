// Copyright 2025 Tasklink Labs
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tasklink/tasklink"
	"github.com/tasklink/tasklink/ai"
	"github.com/tasklink/tasklink/ingestion"
	"github.com/tasklink/tasklink/retrieval"
)

func main() {
	app := &cli.App{
		Name:  "tasklink",
		Usage: "Match customer task requests to suppliers",
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
				Name:   "ingest",
				Usage:  "Index a supplier document",
				Action: ingestCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the supplier document (pdf, txt, md)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Supplier id owning the document",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "skills",
						Usage: "Also detect free-form skill tags",
					},
					&cli.BoolFlag{
						Name:  "profile-summary",
						Usage: "Also produce a prose profile summary",
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Search suppliers for a task query",
				Action: searchCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Customer task query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Maximum number of suppliers to return",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Drop candidates scoring below this value",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "Explain the top matches with a structured summary",
					},
				),
			},
			{
				Name:   "services",
				Usage:  "List the known service taxonomy",
				Action: servicesCommand,
				Flags:  storageFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storageFlags are shared by every command that opens the database.
func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "index",
			Usage:    "Path to the vector index directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "catalog",
			Usage:    "Path to the service catalog database file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name; omit to disable routing, rewriting, tagging and summaries",
		},
	}
}

func openDatabase(c *cli.Context) (*tasklink.Database, error) {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	}
	if host := c.String("chat-host"); host != "" {
		opts = append(opts, ai.WithChatHost(host))
	} else {
		opts = append(opts, ai.WithChatHost(c.String("embedding-host")))
	}
	if model := c.String("chat-model"); model != "" {
		opts = append(opts, ai.WithChatModel(model))
	}

	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := tasklink.NewDatabase(c.String("index"), c.String("catalog"), tasklink.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Close()

	result, err := pipeline.IngestDocument(ctx, c.String("file"), c.String("owner"), ingestion.Options{
		DetectSkills: c.Bool("skills"),
		Summarize:    c.Bool("profile-summary"),
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if result.Status == ingestion.StatusNoContent {
		fmt.Println("No extractable text; nothing indexed.")
		return nil
	}

	fmt.Printf("Indexed %d chunks for %s\n", result.ChunkCount, c.String("owner"))
	if len(result.Roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(result.Roles, ", "))
	}
	if len(result.Skills) > 0 {
		fmt.Printf("Skills: %s\n", strings.Join(result.Skills, ", "))
	}
	if result.Summary != "" {
		fmt.Printf("Summary: %s\n", result.Summary)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	orchestrator, err := db.NewOrchestrator()
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	results, err := orchestrator.Search(ctx, c.String("query"), c.Int("top-k"), retrieval.Options{
		MinScore:  float32(c.Float64("min-score")),
		Summarize: c.Bool("summary"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching suppliers.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s (score %.4f)\n", i+1, result.OwnerID, result.Score)
		fmt.Printf("   %s\n", result.ChunkText)
	}
	if summary := results[0].Summary; summary != nil {
		fmt.Println()
		fmt.Printf("Recommended: %s\n", summary.CandidateName)
		if len(summary.KeyStrengths) > 0 {
			fmt.Printf("Strengths: %s\n", strings.Join(summary.KeyStrengths, ", "))
		}
		fmt.Printf("Reasoning: %s\n", summary.Reasoning)
	}
	return nil
}

func servicesCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	names, err := db.Catalog().ListServiceNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No services recorded yet.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
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
