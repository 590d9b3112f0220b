package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookeasy/portal/internal/core/service"
	"github.com/bookeasy/portal/internal/infrastructure/backend"
	redisdb "github.com/bookeasy/portal/internal/infrastructure/db/redis"
	"github.com/bookeasy/portal/internal/pkg/config"
	"github.com/bookeasy/portal/internal/web"
	"github.com/bookeasy/portal/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	backendClient := backend.NewClient(cfg.BackendURL, log)
	sessionRepo := redisdb.NewSessionRepository(rdb, cfg.Session.TTL)
	sessions := service.NewSessionService(backendClient, sessionRepo, log)

	e, err := web.NewRouter(cfg, log, rdb, backendClient, sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
