package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookline/reservation/internal/config"
	"github.com/bookline/reservation/internal/database"
	"github.com/bookline/reservation/internal/handler"
	"github.com/bookline/reservation/internal/logger"
	"github.com/bookline/reservation/internal/middleware"
	"github.com/bookline/reservation/internal/repository"
	"github.com/bookline/reservation/internal/router"
	"github.com/bookline/reservation/internal/server"
	"github.com/bookline/reservation/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.New(handlers, middlewares)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	// Block until SIGINT/SIGTERM, then drain gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	log.Info().Msg("shutdown complete")
}
