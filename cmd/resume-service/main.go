package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/resumerater/resumerater-backend/internal/rating/events"
	"github.com/resumerater/resumerater-backend/internal/rating/handler"
	"github.com/resumerater/resumerater-backend/internal/rating/model"
	"github.com/resumerater/resumerater-backend/internal/rating/presenter"
	"github.com/resumerater/resumerater-backend/internal/rating/rasterizer"
	"github.com/resumerater/resumerater-backend/internal/rating/service"
	"github.com/resumerater/resumerater-backend/pkg/config"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"github.com/resumerater/resumerater-backend/pkg/messaging"
	"golang.org/x/time/rate"
)

const serviceName = "resume-service"

func main() {
	// Local runs may keep the API key in a .env file
	if !config.IsProductionLike() {
		_ = godotenv.Load()
	}

	// Load configuration with validation (fails fast if required config is missing)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(serviceName, cfg.Server.Environment)
	log.SetLevel(cfg.Server.LogLevel)
	log.Info().Str("model", cfg.Gemini.Model).Msg("starting Resume Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Model client, rate limited when configured
	var modelOpts []model.Option
	if cfg.Gemini.BaseURL != "" {
		modelOpts = append(modelOpts, model.WithBaseURL(cfg.Gemini.BaseURL))
	}
	if cfg.Gemini.Timeout > 0 {
		modelOpts = append(modelOpts, model.WithTimeout(cfg.Gemini.Timeout))
	}
	gemini, err := model.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, modelOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create model client")
	}

	var limiter *rate.Limiter
	if cfg.Limits.ModelRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Limits.ModelRPS), cfg.Limits.MaxConcurrent)
	}
	client := model.NewLimited(limiter, gemini)

	// Rasterizer
	raster := rasterizer.New(rasterizer.Config{
		Binary: cfg.Rasterizer.Binary,
		DPI:    cfg.Rasterizer.DPI,
	}, log)

	// Events are optional; without a broker URL nothing is published
	var (
		rmq       *messaging.RabbitMQ
		publisher service.EventPublisher
	)
	if cfg.RabbitMQ.Enabled() {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		ratingPublisher, err := events.NewRatingEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		publisher = ratingPublisher
	} else {
		log.Info().Msg("rabbitmq not configured, rating events disabled")
	}

	// Initialize service and handlers
	ratingService := service.NewService(raster, client, publisher, cfg.Limits.MaxConcurrent, log)

	pages, err := presenter.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}
	ratingHandler := handler.NewHandler(ratingService, pages, cfg.Upload.MaxSize, log)

	r := newRouter(cfg, ratingHandler, rmq, log)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
