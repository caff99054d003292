// Command seed-admin creates the bootstrap admin account, or resets its
// password when it already exists.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/czarstudio/studio-api/internal/core/service"
	"github.com/czarstudio/studio-api/internal/infrastructure/config"
	mongodb "github.com/czarstudio/studio-api/internal/infrastructure/db/mongo"
	"github.com/czarstudio/studio-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSeed(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "seed-admin"})
		logger.Get().Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "seed-admin",
	})

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatal().Err(err).Msg("seed admin")
	}
}

func run(ctx context.Context, cfg *config.SeedConfig) error {
	log := logger.Get()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("mongodb indexes: %w", err)
	}

	created, err := service.SeedAdmin(ctx, users, cfg.SeedAdmin.Email, cfg.SeedAdmin.Password, cfg.SeedAdmin.Name)
	if err != nil {
		return err
	}

	if created {
		log.Info().Str("email", cfg.SeedAdmin.Email).Msg("admin user created")
	} else {
		log.Info().Str("email", cfg.SeedAdmin.Email).Msg("admin user already exists, password updated")
	}
	return nil
}
