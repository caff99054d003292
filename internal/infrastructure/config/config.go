package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Activity  ActivityConfig
	SeedAdmin SeedAdminConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	// Reverify reloads the account on every authenticated request. Account
	// management routes always re-verify regardless of this flag.
	Reverify bool `env:"AUTH_REVERIFY, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=czar_studio"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

type SeedAdminConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL,    default=admin@czarstudio.com"`
	Password string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	Name     string `env:"SEED_ADMIN_NAME,     default=Admin User"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SeedConfig is the subset read by the seed-admin command. It does not need
// the signing secret or the Redis settings.
type SeedConfig struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	SeedAdmin SeedAdminConfig
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *SeedConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadSeed reads the seed-admin configuration from environment variables.
func LoadSeed(ctx context.Context) (*SeedConfig, error) {
	return loadSeed(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := process(ctx, &cfg, lookuper); err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

func loadSeed(ctx context.Context, lookuper envconfig.Lookuper) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := process(ctx, &cfg, lookuper); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func process(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return nil
}
