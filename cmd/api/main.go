// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/casinoremedial/backend/internal/admin"
	"github.com/casinoremedial/backend/internal/auth"
	"github.com/casinoremedial/backend/internal/client"
	"github.com/casinoremedial/backend/internal/config"
	"github.com/casinoremedial/backend/internal/core"
	"github.com/casinoremedial/backend/internal/game"
	"github.com/casinoremedial/backend/internal/health"
	"github.com/casinoremedial/backend/internal/mail"
	"github.com/casinoremedial/backend/internal/middleware"
	"github.com/casinoremedial/backend/internal/server"
	"github.com/casinoremedial/backend/migrations"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	shutdownTelemetry, err := core.SetupTelemetry(ctx, core.TelemetryOptions{
		Enabled:     cfg.Otel.Enabled,
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: cfg.Otel.ServiceName,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		Insecure:    cfg.Otel.Insecure,
		SampleRate:  cfg.Otel.SampleRate,
	})
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	db, err := core.NewDatabase(ctx, core.DatabaseOptions{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return err
	}

	if err := core.RunMigrations(db, migrations.FS); err != nil {
		return err
	}

	redisClient, err := core.NewRedis(ctx, core.RedisOptions{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		return err
	}

	tokenManager, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}

	mailer := mail.NewSender(cfg.SMTP, logger)
	blacklist := auth.NewRedisBlacklist(redisClient)

	clientRepo := client.NewRepository(db)
	clientSvc := client.NewService(
		clientRepo,
		mailer,
		cfg.Codes.VerificationTTL,
		logger,
	)
	clientHandler := client.NewHandler(clientSvc)

	authSvc := auth.NewService(
		clientRepo,
		tokenManager,
		blacklist,
		mailer,
		cfg.Codes.VerificationTTL,
		cfg.Codes.RecoveryTTL,
		logger,
	)
	authHandler := auth.NewHandler(authSvc, cfg.Cookie, cfg.IsProduction())

	gameRepo := game.NewRepository(db)
	gameSvc := game.NewService(gameRepo, logger)
	gameHandler := game.NewHandler(gameSvc)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := clientSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return err
		}
	}

	redisPing := func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}

	healthHandler := health.NewHandler(db.PingContext, redisPing)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: func() *redis.PoolStats { return redisClient.PoolStats() },
		DBPing:     db.PingContext,
		RedisPing:  redisPing,
		Clients:    clientRepo,
		Games:      gameRepo,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.NewRateLimiter(
		redisClient,
		cfg.RateLimit.Requests,
		cfg.RateLimit.Window,
		cfg.RateLimit.Burst,
		logger,
	).Middleware)
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(middleware.CORSOptions{
		Origin:           cfg.CORS.Origin,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.NewAuthenticator(
		tokenManager,
		blacklist,
		auth.NewAccountSource(clientRepo),
		cfg.Cookie.Name,
	).Middleware
	adminOnly := middleware.Require(middleware.AdminOnly)

	router.Route("/api", func(r chi.Router) {
		clientHandler.RegisterRoutes(r, authenticator)
		authHandler.RegisterRoutes(r, authenticator)
		gameHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
