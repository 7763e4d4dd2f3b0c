package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openbridge-ai/openbridge/internal/analytics"
	"github.com/openbridge-ai/openbridge/internal/config"
	"github.com/openbridge-ai/openbridge/internal/gateway"
	"github.com/openbridge-ai/openbridge/internal/platform/logger"
	"github.com/openbridge-ai/openbridge/internal/platform/otel"
	"github.com/openbridge-ai/openbridge/internal/server"
	"github.com/openbridge-ai/openbridge/internal/store/sqlite"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Server.APIKey != "" {
		log.Info("API key authentication: ENABLED")
	} else {
		log.Info("API key authentication: DISABLED (development mode)")
	}
	for i, p := range cfg.Providers {
		log.Info("Configured provider",
			zap.Int("priority", i+1),
			zap.String("name", p.Name),
			zap.String("base_url", p.BaseURL),
			zap.Bool("static_models", p.Models != nil),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer("openbridge", log, os.Stdout)
		if err != nil {
			log.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	repo, err := sqlite.NewStorage(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open request log store", zap.Error(err))
	}
	defer func() {
		_ = repo.Close()
	}()

	ingestor := analytics.NewIngestor(log, repo)
	ingestor.Start(ctx)

	service := gateway.NewService(log, cfg.Providers, ingestor)
	srv := server.New(cfg, log, service)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("Starting unified gateway", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	ingestor.Stop()
}
