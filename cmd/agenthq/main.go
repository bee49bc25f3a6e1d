package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/agenthq/internal/config"
	"github.com/deppfellow/agenthq/internal/database"
	"github.com/deppfellow/agenthq/internal/handler"
	"github.com/deppfellow/agenthq/internal/logger"
	"github.com/deppfellow/agenthq/internal/repository"
	"github.com/deppfellow/agenthq/internal/router"
	"github.com/deppfellow/agenthq/internal/server"
	"github.com/deppfellow/agenthq/internal/service"
)

const (
	// Time allowed for in-flight requests when the process is asked to stop.
	shutdownTimeout = 30 * time.Second

	schemaTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	schemaCtx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	err = database.EnsureSchema(schemaCtx, &log, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database schema")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
