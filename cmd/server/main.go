package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dialtone-dev/dialtone/internal/adapter/driven/persistence/memory"
	"github.com/dialtone-dev/dialtone/internal/adapter/driven/persistence/sqlite"
	handler "github.com/dialtone-dev/dialtone/internal/adapter/driving/http"
	"github.com/dialtone-dev/dialtone/internal/config"
	"github.com/dialtone-dev/dialtone/internal/core/port"
	"github.com/dialtone-dev/dialtone/internal/core/service"
	"github.com/rs/zerolog"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()

	cfg := config.Load()

	var repo port.UserRepository
	if cfg.DBPath == "" {
		l.Warn().Msg("No database path configured, accounts will not survive restarts")
		repo = memory.NewUserRepository()
	} else {
		sq, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			l.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open database")
		}
		defer sq.Close()
		repo = sq
	}

	presence := service.NewPresence()
	dir := service.NewDirectory()
	router := service.NewRouter(dir)
	store := service.NewSessionStore(cfg.SessionTTL, cfg.RingTTL)

	signals := service.NewSignalService(presence, dir, router, store)
	identity := service.NewIdentity(repo, presence)

	go store.Run()

	h := handler.NewHandler(identity, signals, cfg)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	store.Stop()
	l.Info().Msg("Server exited")
}
