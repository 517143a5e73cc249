package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"ponder/internal/common/pagination"
	appconfig "ponder/internal/config"
	pgRepo "ponder/internal/infra/adapter/persistence/postgres"
	sqliteRepo "ponder/internal/infra/adapter/persistence/sqlite"
	"ponder/internal/infra/db"
	"ponder/internal/infra/generator"
	"ponder/internal/infra/sourcelist"
	"ponder/internal/observability/logging"
	"ponder/internal/observability/tracing"
	"ponder/internal/repository"
	"ponder/pkg/security/csp"

	qUC "ponder/internal/usecase/question"
	seedUC "ponder/internal/usecase/seed"

	hhttp "ponder/internal/handler/http"
	hauth "ponder/internal/handler/http/auth"
	"ponder/internal/handler/http/middleware"
	hquestion "ponder/internal/handler/http/question"
	"ponder/internal/handler/http/requestid"
	hseedrun "ponder/internal/handler/http/seedrun"
	"ponder/internal/handler/web"
	authservice "ponder/internal/service/auth"

	_ "ponder/docs" // swagger docs
)

// @title           Ponder API
// @version         1.0
// @description     哲学質問シードサービスの REST API
// @description     保存された質問と回答の閲覧、AI によるシード実行のトリガー機能を提供します。

// @contact.name   API Support
// @contact.url    https://github.com/yujitsuchiya/ponder
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	logger := initLogger()
	validateAdminCredentials(logger)
	validateViewerCredentials(logger)
	validateJWTSecret(logger)

	cfg := loadAppConfig(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler, authLimiter := setupServer(logger, database, cfg)

	runServer(logger, handler, authLimiter, cfg)
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateAdminCredentials validates the admin credentials at startup.
// This prevents the server from starting with empty or weak admin credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateViewerCredentials validates the viewer credentials at startup.
// Unlike admin validation, this implements graceful degradation:
// if viewer credentials are misconfigured, the viewer role is disabled
// but the application continues to run in admin-only mode.
func validateViewerCredentials(logger *slog.Logger) {
	_ = hauth.ValidateViewerCredentials(logger)
}

// validateJWTSecret validates the JWT_SECRET environment variable for security requirements.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// loadAppConfig loads server configuration from the environment.
func loadAppConfig(logger *slog.Logger) *appconfig.AppConfig {
	cfg, err := appconfig.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load application configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
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

// createGenerator builds the answer generator selected by GENERATOR_TYPE.
// Unlike the worker, the API keeps serving reads when no generator is
// configured; triggering a seed run then fails with a clear error instead.
func createGenerator(logger *slog.Logger) seedUC.Generator {
	generatorType := os.Getenv("GENERATOR_TYPE")
	if generatorType == "" {
		generatorType = "openai"
	}

	switch generatorType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY is not set, seeding trigger disabled")
			return nil
		}
		cfg, err := generator.LoadConfig(generator.DefaultOpenAIModel)
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		return generator.NewOpenAI(apiKey, cfg)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn("ANTHROPIC_API_KEY is not set, seeding trigger disabled")
			return nil
		}
		cfg, err := generator.LoadConfig(generator.DefaultClaudeModel)
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		return generator.NewClaude(apiKey, cfg)
	case "noop":
		logger.Info("using no-op generator", slog.String("type", "noop"))
		return generator.NewNoOp()
	default:
		logger.Error("invalid GENERATOR_TYPE",
			slog.String("type", generatorType),
			slog.String("expected", "openai, claude or noop"))
		os.Exit(1)
		return nil
	}
}

// buildSeedService wires the seeding pipeline for the HTTP trigger.
// Run reports are returned to the caller in the response body, so the
// API binary does not attach notification channels; the worker does.
func buildSeedService(logger *slog.Logger, repo repository.QuestionRepository) *seedUC.Service {
	slCfg, err := sourcelist.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load source list configuration", slog.Any("error", err))
		os.Exit(1)
	}

	svc := seedUC.NewService(repo, createGenerator(logger), sourcelist.New(slCfg), nil)
	return &svc
}

// setupServer configures and returns the HTTP handler with all routes and
// middleware, plus the auth rate limiter for cleanup management.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *appconfig.AppConfig) (http.Handler, *middleware.RateLimiter) {
	repo := newQuestionRepo(database)
	qSvc := &qUC.Service{Repo: repo}
	seedSvc := buildSeedService(logger, repo)

	// Load trusted proxy configuration for IP extraction
	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
	}

	rootMux, authLimiter := setupRoutes(database, cfg, qSvc, seedSvc, ipExtractor, logger)
	handler := applyMiddleware(logger, rootMux, cfg)

	return handler, authLimiter
}

// setupRoutes registers all HTTP routes. Reads (JSON and HTML) are public;
// the seeding trigger registers its own authorization wrapper.
func setupRoutes(
	database *sql.DB,
	cfg *appconfig.AppConfig,
	qSvc *qUC.Service,
	seedSvc *seedUC.Service,
	ipExtractor middleware.IPExtractor,
	logger *slog.Logger,
) (*http.ServeMux, *middleware.RateLimiter) {
	// レート制限: 認証エンドポイントは1分間に5リクエストまで
	authRateLimiter := middleware.NewRateLimiter(5, 1*time.Minute, ipExtractor)

	// Initialize AuthService with MultiUserAuthProvider
	weakPasswords := []string{"password", "123456", "admin", "test", "secret"}
	authProvider := hauth.NewMultiUserAuthProvider(12, weakPasswords)
	publicEndpoints := []string{"/auth/token", "/health", "/ready", "/live", "/metrics", "/swagger/"}
	authService := authservice.NewAuthService(authProvider, publicEndpoints)

	mux := http.NewServeMux()
	mux.Handle("/auth/token", authRateLimiter.Middleware(hauth.TokenHandler(authService)))

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:            database,
		Version:       cfg.Version,
		CSPEnabled:    cfg.CSPEnabled,
		CSPReportOnly: cfg.CSPReportOnly,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// JSON read API
	paginationCfg := pagination.LoadFromEnv()
	hquestion.Register(mux, qSvc, paginationCfg, logger)

	// Seeding trigger (JWT protected inside Register)
	hseedrun.Register(mux, seedSvc, logger)

	// Server-rendered HTML views
	webHandler, err := web.NewHandler(qSvc, logger)
	if err != nil {
		logger.Error("failed to initialize web handler", slog.Any("error", err))
		os.Exit(1)
	}
	web.Register(mux, webHandler)

	return mux, authRateLimiter
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: CORS → Request ID → Recovery → Logging → Body Limit → CSP → Metrics → Tracing
func applyMiddleware(logger *slog.Logger, handler http.Handler, cfg *appconfig.AppConfig) http.Handler {
	// Load CORS configuration from environment variables
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Inject SlogAdapter for logging
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}

	logger.Info("CORS enabled",
		slog.Int("allowed_origins_count", len(corsConfig.Validator.GetAllowedOrigins())),
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	var cspMiddleware func(http.Handler) http.Handler
	if cfg.CSPEnabled {
		// HTML views load their stylesheet from /static/, so the default
		// page policy must allow same-origin styles and images. JSON and
		// auth endpoints stay on the strict policy.
		pagePolicy := csp.NewCSPBuilder().
			DefaultSrc("'none'").
			StyleSrc("'self'").
			ImgSrc("'self'").
			FrameAncestors("'none'").
			BaseUri("'self'").
			FormAction("'self'")

		cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
			Enabled:       true,
			DefaultPolicy: pagePolicy,
			PathPolicies: map[string]*csp.CSPBuilder{
				"/swagger/":  csp.SwaggerUIPolicy(),
				"/questions": csp.StrictPolicy(),
				"/auth/":     csp.StrictPolicy(),
				"/seed":      csp.StrictPolicy(),
			},
			ReportOnly: cfg.CSPReportOnly,
		})
		cspMiddleware = cspMW.Middleware()
		logger.Info("CSP enabled",
			slog.Bool("report_only", cfg.CSPReportOnly))
	} else {
		// No-op middleware if CSP is disabled
		cspMiddleware = func(next http.Handler) http.Handler {
			return next
		}
		logger.Warn("CSP is disabled")
	}

	// Build middleware chain
	// Recommended order:
	// 1. CORS (handles preflight requests early)
	// 2. Request ID (generates unique ID for request tracking)
	// 3. Recovery (catch panics)
	// 4. Logging (log all requests)
	// 5. Body Size Limit (prevent DoS)
	// 6. CSP (set security headers)
	// 7. Metrics (record request metrics)
	// 8. Tracing (span per request, closest to the handler)
	// 9. Authentication (in routes layer)

	middlewareChain := handler

	// Apply in reverse order (innermost to outermost)
	middlewareChain = tracing.Middleware(middlewareChain)
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = cspMiddleware(middlewareChain)
	middlewareChain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(middlewareChain)
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)
	middlewareChain = middleware.CORS(*corsConfig)(middlewareChain)

	return middlewareChain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, authLimiter *middleware.RateLimiter, cfg *appconfig.AppConfig) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodically drop expired auth rate limit entries
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authLimiter.CleanupExpired()
			}
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Cancel background goroutines
	cancel()
	logger.Debug("background goroutines cancelled")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
