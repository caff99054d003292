// Command server runs the studio booking and admin API.
//
//	@title                       Czar Studio API
//	@version                     1.0
//	@description                 Booking capture, portfolio management and staff administration for Czar Studio.
//	@BasePath                    /
//	@securityDefinitions.apikey  BearerAuth
//	@in                          header
//	@name                        Authorization
//	@description                 Type "Bearer" followed by a space and the access token.
package main

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/czarstudio/studio-api/internal/api"
	"github.com/czarstudio/studio-api/internal/api/handler"
	"github.com/czarstudio/studio-api/internal/core/service"
	"github.com/czarstudio/studio-api/internal/infrastructure/config"
	mongodb "github.com/czarstudio/studio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/czarstudio/studio-api/internal/infrastructure/db/redis"
	"github.com/czarstudio/studio-api/internal/infrastructure/queue"
	"github.com/czarstudio/studio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "studio-api"})
		logger.Get().Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "studio-api",
	})

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatal().Err(err).Msg("server")
	}
}

// run returns instead of exiting so its deferred cleanups execute.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	bookings := mongodb.NewBookingRepository(db)
	contacts := mongodb.NewContactRepository(db)
	photos := mongodb.NewPhotoRepository(db)
	videos := mongodb.NewVideoRepository(db)
	activity := mongodb.NewActivityRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, bookings, contacts, photos, videos, activity); err != nil {
		return fmt.Errorf("mongodb indexes: %w", err)
	}

	idem := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// --- Activity workers ---
	// Workers get their own context so in-flight audit entries drain after
	// the HTTP server has stopped accepting requests.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, service.NewActivityService(activity), logger.Component("activity"))
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svc := api.Services{
		Auth:     service.NewAuthService(users, tokens, dispatcher, logger.Component("auth")),
		Users:    service.NewUserService(users, dispatcher, logger.Component("users")),
		Bookings: service.NewBookingService(bookings, idem, dispatcher, logger.Component("bookings")),
		Contacts: service.NewContactService(contacts, idem, dispatcher, logger.Component("contacts")),
		Photos:   service.NewPhotoService(photos, dispatcher, logger.Component("photos")),
		Videos:   service.NewVideoService(videos, dispatcher, logger.Component("videos")),
		Stats:    service.NewStatsService(bookings, contacts, photos, videos),
	}

	e := api.NewRouter(api.RouterConfig{
		Verifier: tokens,
		Users:    users,
		Reverify: cfg.Auth.Reverify,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": mongodb.HealthCheck(mongoClient),
			"redis":   redisdb.HealthCheck(rdb),
		},
		Log: logger.Component("http"),
	}, svc)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	log.Info().Msg("shutdown complete")
	return runErr
}
