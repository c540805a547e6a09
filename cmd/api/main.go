package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"photofeed/cmd/app"
	"photofeed/internal/config"
	handlers "photofeed/internal/handler"
	"photofeed/internal/logging"
	"photofeed/internal/metrics"
	"photofeed/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	// setting up config
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	// workers outlive the signal so the queue can drain
	a.Start(context.Background())

	h := handlers.NewHandlers(a.Services, cfg)
	router := handlers.NewRouter(h, metrics.Handler(),
		middleware.MetricsMiddleware,
		middleware.AuthMiddleware(a.Services.Auth),
	)

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.RequestID,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handlerChain,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DB.Name).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.Close(context.Background())
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := a.Close(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped cleanly")
	return nil
}
