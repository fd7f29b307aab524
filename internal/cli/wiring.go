// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/lotmarket/internal/api"
	"github.com/taibuivan/lotmarket/internal/lot"
	"github.com/taibuivan/lotmarket/internal/mail"
	"github.com/taibuivan/lotmarket/internal/platform/config"
	"github.com/taibuivan/lotmarket/internal/platform/migration"
	mongostore "github.com/taibuivan/lotmarket/internal/platform/mongo"
	"github.com/taibuivan/lotmarket/internal/platform/mq"
	pgstore "github.com/taibuivan/lotmarket/internal/platform/postgres"
	redisstore "github.com/taibuivan/lotmarket/internal/platform/redis"
	"github.com/taibuivan/lotmarket/internal/platform/storage"
	"github.com/taibuivan/lotmarket/internal/user"
)

// infrastructure holds every external connection opened at startup.
type infrastructure struct {
	users   user.Repository
	lots    lot.Repository
	images  lot.ImageStore
	checks  []api.HealthCheck
	closers []func()
	logger  *slog.Logger
}

// Close releases connections in reverse opening order.
func (infra *infrastructure) Close() {
	for i := len(infra.closers) - 1; i >= 0; i-- {
		infra.closers[i]()
	}
}

func (infra *infrastructure) onClose(name string, fn func() error) {
	infra.closers = append(infra.closers, func() {
		infra.logger.Info("closing_dependency", slog.String("dependency", name))
		if err := fn(); err != nil {
			infra.logger.Error("close_dependency_failed", slog.String("dependency", name), slog.Any("error", err))
		}
	})
}

// # Stores

func (infra *infrastructure) openStores(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongostore.NewClient(ctx, cfg.MongoURI, infra.logger)
		if err != nil {
			return err
		}
		infra.onClose("mongo", func() error { return client.Disconnect(context.Background()) })

		database := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			return err
		}

		infra.users = user.NewMongoRepository(database)
		infra.lots = lot.NewMongoRepository(database)
		infra.checks = append(infra.checks, api.HealthCheck{Name: "mongo", Check: func(ctx context.Context) error {
			return mongostore.Ping(ctx, client)
		}})

	case config.StorePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, infra.logger)
		if err != nil {
			return err
		}
		infra.onClose("postgres", func() error { pool.Close(); return nil })

		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, infra.logger); err != nil {
			return err
		}

		infra.users = user.NewPostgresRepository(pool)
		infra.lots = lot.NewPostgresRepository(pool)
		infra.checks = append(infra.checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})

	case config.StoreMemory:
		infra.logger.Warn("memory_store_selected", slog.String("hint", "data is lost on restart"))
		infra.users = user.NewMemoryRepository()
		infra.lots = lot.NewMemoryRepository()

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return nil
}

// # Queue

func (infra *infrastructure) openQueue(ctx context.Context, cfg *config.Config) (*mq.MQ, error) {
	var backend mq.Backend

	switch cfg.QueueDriver {
	case config.QueueRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, infra.logger)
		if err != nil {
			return nil, err
		}
		backend = mq.NewRedisBackend(client)
		infra.onClose("redis", client.Close)

	case config.QueueRabbitMQ:
		client, err := mq.NewRabbitMQClient(mq.RabbitMQOptions{
			URL:           cfg.RabbitMQURL,
			QueueDurable:  true,
			PrefetchCount: 10,
		})
		if err != nil {
			return nil, err
		}
		backend = client
		infra.onClose("rabbitmq", client.Close)

	default:
		return nil, fmt.Errorf("unknown queue driver %q", cfg.QueueDriver)
	}

	queue := mq.New(backend)
	infra.checks = append(infra.checks, api.HealthCheck{Name: cfg.QueueDriver, Check: queue.Ping})
	return queue, nil
}

// # Mail

func (infra *infrastructure) mailSender(ctx context.Context, cfg *config.Config) (mail.Sender, error) {
	switch cfg.MailTransport {
	case config.MailLog:
		return mail.NewLogSender(infra.logger), nil
	case config.MailSMTP:
		return newSMTPSender(cfg), nil
	case config.MailQueue:
		queue, err := infra.openQueue(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return mail.NewQueueSender(queue, cfg.MailQueue), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}

func newSMTPSender(cfg *config.Config) *mail.SMTPSender {
	return mail.NewSMTPSender(mail.SMTPOptions{
		Addr:     cfg.SMTPAddr,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
}

// # Object Storage

func (infra *infrastructure) openStorage(ctx context.Context, cfg *config.Config) error {
	if !cfg.StorageEnabled() {
		infra.logger.Info("image_storage_disabled")
		return nil
	}

	backend, err := storage.NewMinioClient(storage.MinioOptions{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		return err
	}

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.StorageUseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.StorageEndpoint
	}

	images := storage.NewStorage(backend, publicURL)
	if err := images.EnsureBucket(ctx); err != nil {
		return err
	}

	infra.images = images
	infra.checks = append(infra.checks, api.HealthCheck{Name: "storage", Check: images.EnsureBucket})
	return nil
}
