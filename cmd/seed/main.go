// Package main provides a CLI command for running one seeding pass.
// Usage: ponder-seed [--source PATH] [--timeout D] [--output json]
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ponder/internal/domain/entity"
	pgRepo "ponder/internal/infra/adapter/persistence/postgres"
	sqliteRepo "ponder/internal/infra/adapter/persistence/sqlite"
	"ponder/internal/infra/db"
	"ponder/internal/infra/generator"
	"ponder/internal/infra/sourcelist"
	"ponder/internal/repository"
	seedUC "ponder/internal/usecase/seed"
)

// Exit codes by run outcome. Errors that prevent the run from starting at
// all (configuration, source list, database) exit with 1.
const (
	exitCompleted = 0
	exitError     = 1
	exitPartial   = 2
	exitCancelled = 3
)

// SeedOutput represents the JSON output format for a seeding run.
type SeedOutput struct {
	Status         string   `json:"status"`
	ProcessedCount int      `json:"processed_count"`
	FailedTitles   []string `json:"failed_titles"`
	DurationMS     int64    `json:"duration_ms"`
}

func main() {
	// Parse command-line arguments
	var (
		sourcePath   string
		timeout      time.Duration
		outputFormat string
	)

	flag.StringVar(&sourcePath, "source", "", "Path to the title list file (overrides SEED_SOURCE_PATH)")
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum duration for the whole run")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintln(os.Stderr, "Error: --output must be text or json")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: ponder-seed [--source PATH] [--timeout D] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  ponder-seed")
		fmt.Fprintln(os.Stderr, "  ponder-seed --source data/sources.txt --timeout 10m")
		fmt.Fprintln(os.Stderr, "  ponder-seed --output json")
		os.Exit(exitError)
	}

	// Initialize logger
	logger := initLogger()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	svc := buildService(logger, database, sourcePath)

	// SIGINT/SIGTERM cancels between titles; the in-flight title still lands.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("seed run starting", slog.Duration("timeout", timeout))

	run, err := svc.Run(ctx, seedUC.NewContextMonitor(ctx))
	if err != nil {
		logger.Error("seed run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Seed run failed: %v\n", err)
		os.Exit(exitError)
	}

	// Output results
	if outputFormat == "json" {
		outputJSON(run)
	} else {
		outputText(run)
	}

	os.Exit(exitCode(run.Status))
}

// initDatabase opens the database connection and runs migrations, so the
// tool works against a fresh database without the API server.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to migrate database: %v\n", err)
		os.Exit(exitError)
	}
	return database
}

// newQuestionRepo returns the repository adapter for the configured driver.
func newQuestionRepo(database *sql.DB) repository.QuestionRepository {
	if db.Driver() == db.DriverSQLite {
		return sqliteRepo.NewQuestionRepo(database)
	}
	return pgRepo.NewQuestionRepo(database)
}

// buildService wires the seeding pipeline. Notifications are not attached;
// the run report goes to stdout instead.
func buildService(logger *slog.Logger, database *sql.DB, sourcePath string) *seedUC.Service {
	slCfg, err := sourcelist.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load source list configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid source list configuration: %v\n", err)
		os.Exit(exitError)
	}
	if sourcePath != "" {
		slCfg.Path = sourcePath
		slCfg.URL = ""
	}

	svc := seedUC.NewService(newQuestionRepo(database), createGenerator(logger), sourcelist.New(slCfg), nil)
	return &svc
}

// createGenerator creates an answer generator based on the GENERATOR_TYPE
// environment variable.
func createGenerator(logger *slog.Logger) seedUC.Generator {
	generatorType := os.Getenv("GENERATOR_TYPE")
	if generatorType == "" {
		generatorType = "openai"
	}

	switch generatorType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY is required when GENERATOR_TYPE=openai")
			os.Exit(exitError)
		}
		cfg, err := generator.LoadConfig(generator.DefaultOpenAIModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Invalid generator configuration: %v\n", err)
			os.Exit(exitError)
		}
		return generator.NewOpenAI(apiKey, cfg)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "Error: ANTHROPIC_API_KEY is required when GENERATOR_TYPE=claude")
			os.Exit(exitError)
		}
		cfg, err := generator.LoadConfig(generator.DefaultClaudeModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Invalid generator configuration: %v\n", err)
			os.Exit(exitError)
		}
		return generator.NewClaude(apiKey, cfg)
	case "noop":
		logger.Info("using no-op generator", slog.String("type", "noop"))
		return generator.NewNoOp()
	default:
		fmt.Fprintf(os.Stderr, "Error: Invalid GENERATOR_TYPE %q (expected openai, claude or noop)\n", generatorType)
		os.Exit(exitError)
		return nil
	}
}

// exitCode maps a run status to the process exit code.
func exitCode(status entity.SeedRunStatus) int {
	switch status {
	case entity.SeedRunPartial:
		return exitPartial
	case entity.SeedRunCancelled:
		return exitCancelled
	default:
		return exitCompleted
	}
}

// outputText prints the run report in human-readable format.
func outputText(run *entity.SeedRun) {
	fmt.Printf("Status:    %s\n", run.Status)
	fmt.Printf("Processed: %d\n", run.ProcessedCount)
	fmt.Printf("Failed:    %d\n", len(run.FailedTitles))
	fmt.Printf("Duration:  %s\n", run.Duration.Round(time.Millisecond))

	if len(run.FailedTitles) > 0 {
		fmt.Printf("\nFailed titles:\n")
		for i, title := range run.FailedTitles {
			fmt.Printf("%d. %s\n", i+1, title)
		}
	}
}

// outputJSON prints the run report in JSON format.
func outputJSON(run *entity.SeedRun) {
	failed := run.FailedTitles
	if failed == nil {
		failed = []string{}
	}

	output := SeedOutput{
		Status:         string(run.Status),
		ProcessedCount: run.ProcessedCount,
		FailedTitles:   failed,
		DurationMS:     run.Duration.Milliseconds(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(exitError)
	}
}

// initLogger initializes and returns a structured logger writing to stderr,
// keeping stdout clean for the run report.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
