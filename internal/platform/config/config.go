// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. In development a local
'.env' file is merged into the process environment first (joho/godotenv).

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, token issuer, mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Driver Names

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	MailLog   = "log"
	MailSMTP  = "smtp"
	MailQueue = "queue"

	QueueRedis    = "redis"
	QueueRabbitMQ = "rabbitmq"
)

// # Configuration Schema

// Config holds all runtime configuration for the lotmarket API server and worker.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the persistence backend for users and lots.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`

	// Document Database (MongoDB)
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"lotmarket"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis). Optional unless the mail queue runs on Redis.
	RedisURL string `env:"REDIS_URL"`

	// Token issuer
	JWTSecret     string        `env:"JWT_TOKEN_SECRET,required"`
	JWTExpiration time.Duration `env:"JWT_TOKEN_EXPIRATION_TIME" envDefault:"1h"`

	// Outgoing mail
	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"log"`
	MailFrom      string `env:"MAIL_FROM"      envDefault:"no-reply@lotmarket.local"`
	MailResetURL  string `env:"MAIL_RESET_URL" envDefault:"http://localhost:3000/reset-password"`
	SMTPAddr      string `env:"SMTP_ADDR"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`

	// Mail queue broker
	QueueDriver string `env:"QUEUE_DRIVER" envDefault:"redis"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
	MailQueue   string `env:"MAIL_QUEUE"   envDefault:"mail.outbox"`

	// Object Storage (MinIO / S3-compatible)
	StorageEndpoint  string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `env:"STORAGE_SECRET_KEY"`
	StorageBucket    string `env:"STORAGE_BUCKET"     envDefault:"lot-images"`
	StorageUseSSL    bool   `env:"STORAGE_USE_SSL"    envDefault:"false"`
	StoragePublicURL string `env:"STORAGE_PUBLIC_URL"`

	// LotOwnerOnlyMutations restricts lot update/delete to the lot owner.
	LotOwnerOnlyMutations bool `env:"LOT_OWNER_ONLY_MUTATIONS" envDefault:"false"`

	// Cross-Origin Resource Sharing (comma separated)
	CORSOrigins string `env:"CORS_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// A missing .env file is not an error; real environments inject variables directly.
	if os.Getenv("ENVIRONMENT") == "" || os.Getenv("ENVIRONMENT") == "development" {
		_ = godotenv.Load()
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_TOKEN_SECRET must not be blank"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_TOKEN_EXPIRATION_TIME must be positive"))
	}

	switch c.MailTransport {
	case MailLog:
	case MailSMTP:
		if c.SMTPAddr == "" {
			errs = append(errs, errors.New("SMTP_ADDR is required for smtp mail transport"))
		}
	case MailQueue:
		errs = append(errs, c.validateQueue()...)
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) validateQueue() []error {
	switch c.QueueDriver {
	case QueueRedis:
		if c.RedisURL == "" {
			return []error{errors.New("REDIS_URL is required for the redis queue")}
		}
	case QueueRabbitMQ:
		if c.RabbitMQURL == "" {
			return []error{errors.New("RABBITMQ_URL is required for the rabbitmq queue")}
		}
	default:
		return []error{fmt.Errorf("unknown QUEUE_DRIVER %q", c.QueueDriver)}
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageEnabled reports whether object storage for lot images is configured.
func (c *Config) StorageEnabled() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

// AllowedOrigins splits CORS_ORIGINS into a clean list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Port returns the HTTP listen port.
func (c *Config) Port() string {
	return c.ServerPort
}

// ValidateMailWorker checks the settings the mail worker needs regardless of MAIL_TRANSPORT.
func (c *Config) ValidateMailWorker() error {
	errs := c.validateQueue()
	if c.SMTPAddr == "" {
		errs = append(errs, errors.New("SMTP_ADDR is required by the mail worker"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
