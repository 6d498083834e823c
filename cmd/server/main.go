package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/config"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"
	"github.com/satch9/app-caisse-compta-sub000/internal/router"
	"github.com/satch9/app-caisse-compta-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Working states left untouched this long are dropped by the Redis store.
const redisStateTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.StateStore).Msg("failed to open terminal state store")
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := infra.NewSession()
	worker.StartSessionWatcher(ctx, session, 0)

	r := router.New(cfg, store, session)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().
			Str("terminal", cfg.TerminalID).
			Str("backend", cfg.APIBaseURL).
			Msgf("caisse listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	session.Logout(infra.ReasonLogout)
	log.Info().Msg("server exited")
}

// openStore selects where terminal working states live.
func openStore(cfg *config.Config) (repository.TerminalStore, func(), error) {
	switch cfg.StateStore {
	case "", "memory":
		return repository.NewMemoryTerminalStore(), func() {}, nil
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisTerminalStore(rdb, redisStateTTL), func() { _ = rdb.Close() }, nil
	case "postgres":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormTerminalStore(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STATE_STORE %q (memory, redis or postgres)", cfg.StateStore)
	}
}
