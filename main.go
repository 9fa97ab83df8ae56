package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubefetch/backend/internal/config"
	"tubefetch/backend/internal/db"
	"tubefetch/backend/internal/handler"
	apphttp "tubefetch/backend/internal/http"
	"tubefetch/backend/internal/network"
	"tubefetch/backend/internal/progress"
	"tubefetch/backend/internal/repository"
	"tubefetch/backend/internal/scheduler"
	"tubefetch/backend/internal/service"
	"tubefetch/backend/internal/ytdlp"
	"tubefetch/backend/pkg/logger"
	"tubefetch/backend/pkg/snowflake"
)

const (
	sweepInterval = time.Hour
	sweepGrace    = 24 * time.Hour

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := run(cfg); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := snowflake.Init(1); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(database)
	subscriptionRepo := repository.NewSubscriptionRepository(database)
	rateLimitRepo := repository.NewRateLimitRepository(database)
	historyRepo := repository.NewHistoryRepository(database)

	clientFactory := network.NewClientFactory(cfg.ProxyURL)
	provider := ytdlp.New(ytdlp.Options{
		BinPath:    cfg.YtDlpPath,
		FfmpegPath: cfg.FfmpegPath,
		TmpDir:     cfg.TmpDir,
		CookiesB64: cfg.CookiesB64,
	})
	progressStore := progress.NewMemoryStore()

	rateLimitService := service.NewRateLimitService(rateLimitRepo)
	identityService := service.NewIdentityService(subscriptionRepo)
	migrationService := service.NewMigrationService(rateLimitRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	analyzeService := service.NewAnalyzeService(provider)
	downloadService := service.NewDownloadService(provider, rateLimitService, historyRepo, progressStore)
	historyService := service.NewHistoryService(historyRepo)
	proxyService := service.NewProxyService(clientFactory)

	e := apphttp.NewRouter(
		handler.NewAnalyzeHandler(analyzeService, identityService, rateLimitService),
		handler.NewDownloadHandler(downloadService, identityService, rateLimitService, progressStore),
		handler.NewMigrationHandler(migrationService, identityService),
		handler.NewHistoryHandler(historyService),
		handler.NewAuthHandler(authService),
		handler.NewProxyHandler(proxyService),
		authService,
		cfg.StaticDir,
	)

	sweeper := scheduler.New(rateLimitService, sweepInterval, sweepGrace)
	sweeper.Start()
	defer sweeper.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		errCh <- e.Start(cfg.Addr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
