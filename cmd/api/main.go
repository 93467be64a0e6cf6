package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dentalshift/marketplace-api/internal/api"
	"github.com/dentalshift/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/dentalshift/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/dentalshift/marketplace-api/internal/infrastructure/db/redis"
	"github.com/dentalshift/marketplace-api/pkg/logger"
)

// insecureDefaultSecret mirrors the historical fallback used when JWT_SECRET
// is not configured. Tokens signed with it are forgeable by anyone reading
// this source; production deployments must set JWT_SECRET.
const insecureDefaultSecret = "your-secret-key-here"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; falling back to an insecure default signing key")
		jwtSecret = insecureDefaultSecret
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	e := api.NewRouter(db, rdb, jwtSecret, tokenTTL, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
