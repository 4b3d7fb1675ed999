// Command audiobridged serves the audio extraction API.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"audiobridge/internal/cache"
	"audiobridge/internal/config"
	"audiobridge/internal/extract"
	"audiobridge/internal/logging"
	"audiobridge/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	logger := logging.New(slog.LevelInfo)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("configuration invalid", logging.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	native := extract.NewNative()

	// Startup provisioning: locate yt-dlp before the backend is handed to the
	// server. A missing binary leaves the primary path unready (503) instead
	// of aborting, since /extract-simple still works without it.
	var primary extract.Extractor
	switch cfg.Extract.Backend {
	case config.BackendNative:
		primary = native
	default:
		path, err := extract.Provision(cfg.Extract.YTDLPPath)
		if err != nil {
			logger.Warn("primary backend unavailable", logging.Error(err))
		} else {
			primary = extract.NewYTDLP(extract.YTDLPConfig{
				Path:          path,
				ClientProfile: cfg.Extract.ClientProfile,
				CookiesFile:   cfg.Extract.CookiesFile,
				Timeout:       time.Duration(cfg.Extract.TimeoutSeconds) * time.Second,
			})
		}
	}

	metaCache := cache.New(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute, logger)
	defer metaCache.Close()

	var limiter *rate.Limiter
	if cfg.Limits.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Limits.RequestsPerSecond), cfg.Limits.Burst)
	}

	srv := server.New(server.Options{
		Logger:  logger,
		Primary: primary,
		Simple:  native,
		Cache:   metaCache,
		Limiter: limiter,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Bind,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			slog.String("bind", cfg.Server.Bind),
			slog.String("backend", backendName(primary)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", logging.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

func backendName(e extract.Extractor) string {
	if e == nil {
		return "unready"
	}
	return e.Name()
}
