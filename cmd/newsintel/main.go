// Copyright 2025 Finsight Labs
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/finsight/newsintel"
	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/ingestion"
	"github.com/finsight/newsintel/query"
	"github.com/finsight/newsintel/storage"
	"github.com/finsight/newsintel/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "newsintel",
		Usage: "Financial news enrichment and adaptive query processing",
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
				Name:      "ingest",
				Usage:     "Ingest and enrich articles from a JSON file",
				Action:    ingestCommand,
				ArgsUsage: "FILE",
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the article database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent enrichment workers",
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Search enriched articles with a natural-language query",
				Action:    queryCommand,
				ArgsUsage: "QUERY...",
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the article database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.StringFlag{
						Name:  "sentiment",
						Usage: "Force a sentiment filter (bullish, bearish, neutral)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full response as JSON",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show article and embedding counts",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the article database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: defaults.EmbeddingHost,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: defaults.EmbeddingModel,
		},
		&cli.StringFlag{
			Name:  "analyst-host",
			Usage: "Analysis service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "analyst-model",
			Usage: "Analysis model name",
			Value: defaults.AnalystModel,
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for hosted providers",
			EnvVars: []string{"NEWSINTEL_API_KEY"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	analystHost := c.String("analyst-host")
	if analystHost == "" {
		analystHost = c.String("embedding-host")
	}

	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithAnalystHost(analystHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAnalystModel(c.String("analyst-model")),
	)
	if key := c.String("api-key"); key != "" {
		ai.WithAPIKey(key)(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

// articleInput is the JSON shape the ingest command accepts.
type articleInput struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	fileName := c.Args().First()
	if fileName == "" {
		return fmt.Errorf("a JSON file of articles is required")
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read articles file: %w", err)
	}

	var inputs []articleInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse articles file: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no articles in %s", fileName)
	}

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	engine, err := newsintel.NewEngine(c.String("db"), newsintel.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	var opts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}
	pipeline, err := engine.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	articles := make([]*core.Article, len(inputs))
	for i, input := range inputs {
		timestamp := input.Timestamp
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}
		articles[i] = &core.Article{
			Title:     input.Title,
			Content:   input.Content,
			Source:    input.Source,
			Timestamp: timestamp,
		}
	}

	fmt.Fprintf(os.Stderr, "Ingesting %d articles from %s\n", len(articles), fileName)
	results := pipeline.IngestBatch(ctx, articles)

	var stored, duplicates, failed int
	for i, result := range results {
		switch {
		case result == nil:
			failed++
			fmt.Printf("FAILED     %s\n", articles[i].Title)
		case result.IsDuplicate:
			duplicates++
			fmt.Printf("DUPLICATE  %s (of %s)\n", articles[i].Title, strings.Join(result.DuplicateIDs, ", "))
		default:
			stored++
			fmt.Printf("STORED     %s  entities=%d stocks=%d sentiment=%s\n",
				articles[i].Title, result.EntitiesExtracted, result.StocksImpacted,
				result.SentimentClassification)
		}
	}

	fmt.Fprintf(os.Stderr, "\nStored: %d  Duplicates: %d  Failed: %d\n", stored, duplicates, failed)
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	queryText := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(queryText) == "" {
		return fmt.Errorf("a query is required")
	}

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	engine, err := newsintel.NewEngine(c.String("db"), newsintel.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	processor, err := engine.NewProcessor()
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}

	result, err := processor.Execute(ctx, queryText, c.Int("top-k"), c.String("sentiment"))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(query.Assemble(queryText, result), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	routing := result.Routing
	fmt.Fprintf(os.Stderr, "Strategy: %s (confidence %.2f)\n", routing.Strategy, routing.Confidence)
	if meta := routing.StrategyMetadata; meta != nil {
		diag, _ := json.Marshal(meta)
		fmt.Fprintf(os.Stderr, "Execution: %s\n\n", diag)
	}

	if len(result.Articles) == 0 {
		fmt.Println("No matching articles.")
		return nil
	}

	for i, scored := range result.Articles {
		fmt.Printf("%2d. [%.3f] %s\n", i+1, scored.FinalScore, scored.Article.Title)
		fmt.Printf("    %s | %s", scored.Article.Source, scored.Article.Timestamp.Format("2006-01-02"))
		if scored.Article.HasSentiment() {
			fmt.Printf(" | %s (%.0f)", scored.Article.Sentiment.Classification, scored.Article.Sentiment.SignalStrength)
		}
		fmt.Println()
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	// Stats only needs the stores, never the AI services
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	articles, err := badger.NewArticleRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer articles.Close()

	vectors, err := badger.NewVectorIndex(backend)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}
	defer vectors.Close()

	articleCount, err := articles.Count(ctx, storage.Filter{})
	if err != nil {
		return err
	}
	vectorCount, err := vectors.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Articles:   %d\n", articleCount)
	fmt.Printf("Embeddings: %d\n", vectorCount)
	if pending := articleCount - vectorCount; pending > 0 {
		fmt.Printf("Unembedded: %d\n", pending)
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
