// Copyright 2025 Redfin Labs
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
	"time"

	"github.com/redfinlabs/annotate/ai"
	"github.com/redfinlabs/annotate/ai/openai"
	"github.com/redfinlabs/annotate/cache"
	"github.com/redfinlabs/annotate/keywords"
	"github.com/redfinlabs/annotate/pipeline"
	"github.com/redfinlabs/annotate/tags"
	"github.com/redfinlabs/annotate/vocab"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "annotate",
		Usage: "Annotate news articles with keywords, tags and categories",
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
				Name:   "run",
				Usage:  "Run the three-stage annotation pipeline over a JSONL file",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the input JSONL file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for the annotated artifacts",
						Value:   pipeline.DefaultOutputDir,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Model service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "tag-model",
						Usage: "Model name for tag generation",
						Value: "qwen2.5:3b-instruct",
					},
					&cli.StringFlag{
						Name:  "category-model",
						Usage: "Model name for category classification",
						Value: "gemma3:4b",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent model calls during tag generation",
						Value: tags.DefaultWorkers,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Records per unit of work in the tag stage",
						Value: tags.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "max-keywords",
						Usage: "Maximum keywords extracted per record",
						Value: keywords.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "vocab",
						Usage: "Path to a YAML controlled vocabulary override",
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to an annotation cache directory",
					},
					&cli.DurationFlag{
						Name:  "wait",
						Usage: "How long to wait for the model host before giving up",
						Value: 0 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "no-tags",
						Usage: "Skip the tag generation stage",
					},
					&cli.BoolFlag{
						Name:  "no-categories",
						Usage: "Skip the category classification stage",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	vocabulary := vocab.Default()
	if path := c.String("vocab"); path != "" {
		loaded, err := vocab.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
		vocabulary = loaded
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithTagModel(c.String("tag-model")),
		ai.WithCategoryModel(c.String("category-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	defer provider.Close()

	if wait := c.Duration("wait"); wait > 0 {
		if err := provider.Wait(ctx, wait); err != nil {
			return fmt.Errorf("model host did not come up: %w", err)
		}
	}

	opts := []pipeline.Option{
		pipeline.WithOutputDir(c.String("output-dir")),
		pipeline.WithVocabulary(vocabulary),
		pipeline.WithMaxKeywords(c.Int("max-keywords")),
		pipeline.WithBatchSize(c.Int("batch-size")),
		pipeline.WithWorkers(c.Int("workers")),
	}
	if c.Bool("no-tags") {
		opts = append(opts, pipeline.WithoutTags())
	}
	if c.Bool("no-categories") {
		opts = append(opts, pipeline.WithoutCategories())
	}

	if dir := c.String("cache"); dir != "" {
		store, err := cache.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer store.Close()
		opts = append(opts, pipeline.WithCache(store))
	}

	p, err := pipeline.New(provider, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input: %s\n", c.String("input"))
	fmt.Fprintf(os.Stderr, "Host: %s\n", aiConfig.Host)
	fmt.Fprintf(os.Stderr, "Tag model: %s\n", aiConfig.TagModel)
	fmt.Fprintf(os.Stderr, "Category model: %s\n", aiConfig.CategoryModel)
	fmt.Fprintln(os.Stderr)

	result, err := p.Run(ctx, c.String("input"))
	if err != nil {
		return fmt.Errorf("annotation run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Run %s complete: %d records (%d malformed lines skipped)\n",
		result.RunID, result.Records, result.SkippedLines)
	fmt.Fprintf(os.Stderr, "  %s\n", result.KeywordPath)
	if !c.Bool("no-tags") {
		fmt.Fprintf(os.Stderr, "  %s (%d failures)\n", result.TagPath, result.TagFailures)
	}
	if !c.Bool("no-categories") {
		fmt.Fprintf(os.Stderr, "  %s (%d failures)\n", result.CategoryPath, result.CategoryFailures)
	}
	if c.String("cache") != "" {
		fmt.Fprintf(os.Stderr, "Cache hits: %d\n", result.CacheHits)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
