// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/config"
)

func validConfig() *config.Config {
	return &config.Config{
		StoreDriver:   config.StoreMemory,
		JWTSecret:     "secret",
		JWTExpiration: time.Hour,
		MailTransport: config.MailLog,
		QueueDriver:   config.QueueRedis,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"memory_store_ok", func(c *config.Config) {}, ""},
		{"mongo_without_uri", func(c *config.Config) { c.StoreDriver = config.StoreMongo }, "MONGO_URI"},
		{"postgres_without_dsn", func(c *config.Config) { c.StoreDriver = config.StorePostgres }, "DATABASE_URL"},
		{"unknown_store", func(c *config.Config) { c.StoreDriver = "sqlite" }, "STORE_DRIVER"},
		{"blank_secret", func(c *config.Config) { c.JWTSecret = "  " }, "JWT_TOKEN_SECRET"},
		{"zero_expiration", func(c *config.Config) { c.JWTExpiration = 0 }, "JWT_TOKEN_EXPIRATION_TIME"},
		{"smtp_without_addr", func(c *config.Config) { c.MailTransport = config.MailSMTP }, "SMTP_ADDR"},
		{"redis_queue_without_url", func(c *config.Config) { c.MailTransport = config.MailQueue }, "REDIS_URL"},
		{"rabbit_queue_without_url", func(c *config.Config) {
			c.MailTransport = config.MailQueue
			c.QueueDriver = config.QueueRabbitMQ
		}, "RABBITMQ_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_TOKEN_SECRET", "s3cret")
	t.Setenv("JWT_TOKEN_EXPIRATION_TIME", "15m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
	assert.False(t, cfg.StorageEnabled())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("JWT_TOKEN_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_ValidateMailWorker(t *testing.T) {
	cfg := validConfig()
	err := cfg.ValidateMailWorker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
	assert.Contains(t, err.Error(), "SMTP_ADDR")

	cfg.RedisURL = "redis://localhost:6379/0"
	cfg.SMTPAddr = "localhost:25"
	assert.NoError(t, cfg.ValidateMailWorker())
}
