// Copyright 2025 Poiesic Systems
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

	"github.com/joho/godotenv"
	"github.com/poiesic/talentrank"
	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/pipeline"
	"github.com/urfave/cli/v2"
)

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "Chat service host URL for judge and extractor",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"TALENTRANK_LLM_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (defaults to llm-host)",
			EnvVars: []string{"TALENTRANK_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "rerank-host",
			Usage:   "Cross-encoder reranking service host URL",
			Value:   "http://localhost:8087",
			EnvVars: []string{"TALENTRANK_RERANK_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"TALENTRANK_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "judge-model",
			Usage:   "Chat model name for candidate judgments",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"TALENTRANK_JUDGE_MODEL"},
		},
		&cli.StringFlag{
			Name:    "extractor-model",
			Usage:   "Chat model name for structured extraction (defaults to judge-model)",
			EnvVars: []string{"TALENTRANK_EXTRACTOR_MODEL"},
		},
	}
}

func fusionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of Stage 1 candidates that advance to fusion scoring",
			Value:   pipeline.DefaultTopN,
		},
		&cli.Float64Flag{
			Name:  "judge-weight",
			Usage: "Weight of the LLM judge score in the combined score",
			Value: pipeline.DefaultJudgeWeight,
		},
		&cli.Float64Flag{
			Name:  "pairwise-weight",
			Usage: "Weight of the cross-encoder score in the combined score",
			Value: pipeline.DefaultPairwiseWeight,
		},
	}
}

func main() {
	// Optional .env for service hosts and models
	godotenv.Load()

	app := &cli.App{
		Name:   "talentrank",
		Usage:  "Rank resume pools against job openings",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full ranking funnel over a job posting and a resume directory",
				Action: runCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "job",
						Aliases:  []string{"j"},
						Usage:    "Path to the job posting text file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "resumes",
						Aliases:  []string{"r"},
						Usage:    "Directory of resume .txt files",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the result JSON to this file instead of stdout",
					},
				}, append(fusionFlags(), aiFlags()...)...),
			},
			{
				Name:   "resume",
				Usage:  "Continue a checkpointed run",
				Action: resumeCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "run",
						Usage:    "Run ID to continue",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the result JSON to this file instead of stdout",
					},
				}, append(fusionFlags(), aiFlags()...)...),
			},
			{
				Name:   "show",
				Usage:  "List stored runs, or show one run's final ranking",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:  "run",
						Usage: "Run ID to show (omit to list all runs)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("llm-host")
	}

	return ai.NewConfig(
		ai.WithLLMHost(c.String("llm-host")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithRerankHost(c.String("rerank-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithJudgeModel(c.String("judge-model")),
		ai.WithExtractorModel(c.String("extractor-model")),
	)
}

func openPipeline(c *cli.Context) (*talentrank.Workspace, *pipeline.Pipeline, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	workspace, err := talentrank.OpenWorkspace(c.String("db"), talentrank.WithAIConfig(aiConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workspace: %w", err)
	}

	p, err := workspace.NewPipeline(
		pipeline.WithTopN(c.Int("top")),
		pipeline.WithWeights(c.Float64("judge-weight"), c.Float64("pairwise-weight")),
	)
	if err != nil {
		workspace.Close()
		return nil, nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return workspace, p, nil
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	jobText, err := pipeline.LoadTextFile(c.String("job"))
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}

	resumeTexts, err := pipeline.LoadResumeTexts(c.String("resumes"))
	if err != nil {
		return fmt.Errorf("failed to read resumes: %w", err)
	}

	workspace, p, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer workspace.Close()
	defer p.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Resumes: %d\n", len(resumeTexts))
	fmt.Fprintf(os.Stderr, "Shortlist size: %d\n", c.Int("top"))
	fmt.Fprintln(os.Stderr)

	result, err := p.RankTexts(ctx, jobText, resumeTexts)
	if err != nil {
		return fmt.Errorf("ranking run failed: %w", err)
	}

	return writeResult(c, result)
}

func resumeCommand(c *cli.Context) error {
	ctx := context.Background()

	workspace, p, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer workspace.Close()
	defer p.Release()

	result, err := p.Resume(ctx, core.ID(c.Uint64("run")))
	if err != nil {
		return fmt.Errorf("failed to continue run: %w", err)
	}

	return writeResult(c, result)
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	workspace, err := talentrank.OpenWorkspace(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer workspace.Close()

	repo := workspace.RunRepository()

	if !c.IsSet("run") {
		ids, err := repo.ListRuns(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			checkpoint, err := repo.LoadCheckpoint(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\t%s\n", id, checkpoint.Stage, checkpoint.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	runID := core.ID(c.Uint64("run"))
	fusion, err := workspace.RunRepository().GetFusionRanking(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	data, err := json.MarshalIndent(fusion, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func writeResult(c *cli.Context, result *pipeline.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return os.WriteFile(out, append(data, '\n'), 0644)
	}

	fmt.Println(string(data))
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
