package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	cacheadapter "github.com/ericfisherdev/gitscope/internal/adapter/driven/cache"
	githubadapter "github.com/ericfisherdev/gitscope/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/gitscope/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/gitscope/internal/adapter/driving/http"
	"github.com/ericfisherdev/gitscope/internal/application"
	"github.com/ericfisherdev/gitscope/internal/config"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

const githubAPIBase = "https://api.github.com"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration; a .env file is honored when present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"cache_ttl", cfg.CacheTTL,
		"redis", cfg.RedisURL != "",
		"token", cfg.GitHubToken != "",
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database for search history and run migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// 4. Pick the session cache: Redis when configured, in-memory otherwise.
	var sessionCache driven.SessionCache
	if cfg.RedisURL != "" {
		redisCache, err := cacheadapter.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := redisCache.Close(); closeErr != nil {
				slog.Error("error closing redis", "error", closeErr)
			}
		}()
		sessionCache = redisCache
		slog.Info("session cache backed by redis")
	} else {
		sessionCache = cacheadapter.NewMemory()
		slog.Info("session cache in memory")
	}

	// 5. Wire adapters and services.
	ghClient := githubadapter.NewClient(cfg.GitHubToken, cfg.HTTPTimeout)
	searchStore := sqliteadapter.NewSearchRepo(db)

	profileSvc := application.NewProfileService(ghClient, sessionCache)
	compareSvc := application.NewCompareService(ghClient)

	apiHandler := httphandler.NewHandler(profileSvc, compareSvc, searchStore, slog.Default())
	proxy := httphandler.NewProxy(githubAPIBase, cfg.GitHubToken, cfg.HTTPTimeout, slog.Default())
	handler := httphandler.NewServeMux(apiHandler, proxy, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("gitscope started", "listen_addr", cfg.ListenAddr)

	// 6. Wait for shutdown signal, then drain.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
