package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"website-editor/internal/auth"
	"website-editor/internal/cache"
	"website-editor/internal/catalog"
	"website-editor/internal/config"
	"website-editor/internal/handler"
	"website-editor/internal/middleware"
	"website-editor/internal/repository/postgres"
	postgresEditor "website-editor/internal/repository/postgres/editor"
	serviceEditor "website-editor/internal/service/editor"
	"website-editor/internal/telemetry"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Log to stdout, and additionally to a rotating file when LOG_DIR is set
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := config.NewLogger(cfg.Environment, logOutput)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, "website-editor", cfg.Environment, logger)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// JWT verifier for Supabase authentication; optional in dev
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err = auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
	} else if cfg.Environment == "prod" {
		log.Fatalf("SUPABASE_URL is required in prod")
	} else {
		logger.Warn("SUPABASE_URL not set, bearer tokens will be rejected")
	}

	devUserID := ""
	if cfg.Environment == "dev" && cfg.DevUserID != "" {
		devUserID = cfg.DevUserID
		logger.Warn("DEV MODE: unauthenticated requests act as a fixed user", "user_id", devUserID)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("schema ensured", "table_prefix", cfg.TablePrefix)
	}

	// Feed cache: shared when Redis is configured, per-process otherwise
	var feedCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.TablePrefix)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		feedCache = redisCache
		logger.Info("feed cache using redis")
	} else {
		feedCache = cache.NewMemoryCache(cfg.FeedCacheTTL)
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	uiRepo := postgresEditor.NewUiRepository(repoConfig)
	subPromptRepo := postgresEditor.NewSubPromptRepository(repoConfig)
	engagementRepo := postgresEditor.NewEngagementRepository(repoConfig)
	feedRepo := postgresEditor.NewFeedRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Services
	feedService := serviceEditor.NewFeedService(feedRepo, feedCache, cfg.FeedCacheTTL, logger)
	subPromptService := serviceEditor.NewSubPromptService(uiRepo, subPromptRepo, txManager, registry, logger)
	uiService := serviceEditor.NewUiService(uiRepo, subPromptRepo, engagementRepo, txManager, feedService, logger)
	engagementService := serviceEditor.NewEngagementService(engagementRepo, cfg.ViewTimeout, logger)

	logger.Info("services initialized")

	uiHandler := handler.NewUiHandler(uiService, engagementService, logger)
	mux := handler.NewRouter(handler.Handlers{
		SubPrompts: handler.NewSubPromptHandler(subPromptService, logger),
		Uis:        uiHandler,
		Feed:       handler.NewFeedHandler(feedService, logger),
		Catalog:    handler.NewCatalogHandler(registry),
	})

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Logging → Timeout → Auth → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.Auth(jwtVerifier, devUserID, logger)(h)
	h = middleware.Timeout(cfg.RequestTimeout)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := uiHandler.WaitForViews(shutdownCtx); err != nil {
		logger.Warn("view increments still running at shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", "error", err)
	}
}
