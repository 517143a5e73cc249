package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"ponder/internal/domain/entity"
	hhttp "ponder/internal/handler/http/respond"
	pgRepo "ponder/internal/infra/adapter/persistence/postgres"
	sqliteRepo "ponder/internal/infra/adapter/persistence/sqlite"
	"ponder/internal/infra/db"
	"ponder/internal/infra/generator"
	"ponder/internal/infra/notifier"
	"ponder/internal/infra/sourcelist"
	workerPkg "ponder/internal/infra/worker"
	"ponder/internal/observability/logging"
	"ponder/internal/repository"
	"ponder/internal/usecase/notify"
	seedUC "ponder/internal/usecase/seed"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM questions LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("notify_max_concurrent", workerConfig.NotifyMaxConcurrent),
		slog.Duration("seed_timeout", workerConfig.SeedTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Initialize Discord notification channel
	discordConfig := loadDiscordConfig(logger)
	var discordChannel notify.Channel
	if discordConfig.Enabled {
		discordChannel = notify.NewDiscordChannel(discordConfig)
		logger.Info("Discord channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Discord channel disabled")
	}

	// Initialize Slack notification channel
	slackConfig := loadSlackConfig(logger)
	var slackChannel notify.Channel
	if slackConfig.Enabled {
		slackChannel = notify.NewSlackChannel(slackConfig)
		logger.Info("Slack channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Slack channel disabled")
	}

	// Initialize notification service (use workerConfig)
	var channels []notify.Channel
	if discordChannel != nil {
		channels = append(channels, discordChannel)
	}
	if slackChannel != nil {
		channels = append(channels, slackChannel)
	}

	notifyService := notify.NewService(channels, workerConfig.NotifyMaxConcurrent)
	logger.Info("Notification service initialized",
		slog.Int("channels", len(channels)),
		slog.Int("max_concurrent", workerConfig.NotifyMaxConcurrent))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger, notifyService)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := setupSeedService(logger, database, notifyService)

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// newQuestionRepo returns the repository adapter for the configured driver.
func newQuestionRepo(database *sql.DB) repository.QuestionRepository {
	if db.Driver() == db.DriverSQLite {
		return sqliteRepo.NewQuestionRepo(database)
	}
	return pgRepo.NewQuestionRepo(database)
}

// setupSeedService creates and configures the seeding pipeline with all
// dependencies.
func setupSeedService(logger *slog.Logger, database *sql.DB, notifyService notify.Service) seedUC.Service {
	repo := newQuestionRepo(database)
	gen := createGenerator(logger)

	slCfg, err := sourcelist.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load source list configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if slCfg.URL != "" {
		logger.Info("source list loading from URL", slog.String("url", slCfg.URL))
	} else {
		logger.Info("source list loading from file", slog.String("path", slCfg.Path))
	}

	return seedUC.NewService(repo, gen, sourcelist.New(slCfg), notifyService)
}

// createGenerator creates an answer generator based on the GENERATOR_TYPE
// environment variable. The worker exists to seed, so a missing API key is
// fatal here, unlike in the API server.
func createGenerator(logger *slog.Logger) seedUC.Generator {
	generatorType := os.Getenv("GENERATOR_TYPE")
	if generatorType == "" {
		generatorType = "openai"
	}

	switch generatorType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when GENERATOR_TYPE=openai")
			os.Exit(1)
		}
		cfg, err := generator.LoadConfig(generator.DefaultOpenAIModel)
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using OpenAI API for answer generation",
			slog.String("type", "openai"),
			slog.String("model", cfg.Model))
		return generator.NewOpenAI(apiKey, cfg)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when GENERATOR_TYPE=claude")
			os.Exit(1)
		}
		cfg, err := generator.LoadConfig(generator.DefaultClaudeModel)
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using Claude API for answer generation",
			slog.String("type", "claude"),
			slog.String("model", cfg.Model))
		return generator.NewClaude(apiKey, cfg)
	case "noop":
		logger.Info("Using no-op generator", slog.String("type", "noop"))
		return generator.NewNoOp()
	default:
		logger.Error("Invalid GENERATOR_TYPE",
			slog.String("type", generatorType),
			slog.String("expected", "openai, claude or noop"))
		os.Exit(1)
		return nil
	}
}

// loadDiscordConfig loads Discord configuration from environment variables.
//
// Environment variables:
//   - DISCORD_ENABLED: Boolean flag to enable Discord notifications (default: false)
//   - DISCORD_WEBHOOK_URL: Discord webhook URL (required if enabled)
//
// Returns:
//   - notifier.DiscordConfig: Configuration with validation applied
func loadDiscordConfig(logger *slog.Logger) notifier.DiscordConfig {
	enabled := os.Getenv("DISCORD_ENABLED") == "true"
	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")

	if !enabled {
		return notifier.DiscordConfig{Enabled: false}
	}

	// Validate webhook URL format
	if webhookURL == "" {
		logger.Warn("Discord webhook URL is empty, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Discord webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Discord webhook URL must use HTTPS, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Host != "discord.com" {
		logger.Warn("Invalid Discord webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.DiscordConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/api/webhooks/") {
		logger.Warn("Invalid Discord webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.DiscordConfig{Enabled: false}
	}

	return notifier.DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// loadSlackConfig loads Slack configuration from environment variables.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack notifications (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
//
// Returns:
//   - notifier.SlackConfig: Configuration with validation applied
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	// Validate webhook URL format
	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronWorker starts the cron scheduler and runs the seed job periodically.
func startCronWorker(logger *slog.Logger, svc seedUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSeedJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runSeedJob executes a single seeding run with timeout and error handling.
func runSeedJob(logger *slog.Logger, svc seedUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("seed job started")

	// シード処理のタイムアウト（設定から取得）
	ctx, cancel := context.WithTimeout(context.Background(), cfg.SeedTimeout)
	defer cancel()

	run, err := svc.Run(ctx, seedUC.NewContextMonitor(ctx))
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("seed job failed", slog.Any("error", hhttp.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	// Record metrics
	metrics.RecordJobRun(jobResult(run.Status))
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordTitlesProcessed(run.ProcessedCount)
	if run.Status == entity.SeedRunCompleted {
		metrics.RecordLastSuccess()
	}

	logger.Info("seed job completed",
		slog.Int("processed", run.ProcessedCount),
		slog.Int("failed", len(run.FailedTitles)),
		slog.String("status", string(run.Status)),
		slog.Duration("duration", run.Duration),
	)
}

// jobResult maps a run status to the job result metric label.
func jobResult(status entity.SeedRunStatus) string {
	switch status {
	case entity.SeedRunCompleted:
		return "success"
	case entity.SeedRunPartial:
		return "partial"
	case entity.SeedRunCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
