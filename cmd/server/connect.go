package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"storefront-be/internal/cart"
	"storefront-be/internal/config"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
)

const maxRetries = 5

var retryDelay = 5 * time.Second

func connectRedisWithRetry(ctx context.Context, opts *redis.Options, attempts int) (*redis.Client, error) {
	rdb := redis.NewClient(opts)

	var err error
	for i := 1; i <= attempts; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			logger.L().Info("connected to redis", zap.String("addr", opts.Addr))
			return rdb, nil
		}

		logger.L().Warn("redis connection failed",
			zap.Int("attempt", i),
			zap.Int("max", attempts),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	rdb.Close()
	return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
}

func waitForKafka(broker string, attempts int) error {
	var err error
	for i := 1; i <= attempts; i++ {
		var conn *kafka.Conn
		if conn, err = kafka.Dial("tcp", broker); err == nil {
			conn.Close()
			logger.L().Info("connected to kafka", zap.String("broker", broker))
			return nil
		}

		logger.L().Warn("kafka connection failed",
			zap.Int("attempt", i),
			zap.Int("max", attempts),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("connect kafka %s: %w", broker, err)
}

// newCartStore uses Redis when REDIS_ADDR is set and reachable, and falls
// back to process memory otherwise.
func newCartStore(ctx context.Context, cfg *config.Config) (cart.Store, func()) {
	if cfg.RedisAddr == "" {
		logger.L().Info("REDIS_ADDR not set, carts are kept in memory")
		return cart.NewMemoryStore(), func() {}
	}

	rdb, err := connectRedisWithRetry(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, maxRetries)
	if err != nil {
		logger.L().Error("falling back to in-memory carts", zap.Error(err))
		return cart.NewMemoryStore(), func() {}
	}

	return cart.NewRedisStore(rdb, cfg.CartTTL), func() { rdb.Close() }
}

// newPublisher returns a Kafka publisher when KAFKA_BROKER is set and
// reachable. Cart operations never depend on it.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.KafkaBroker == "" {
		return events.Noop{}
	}

	if err := waitForKafka(cfg.KafkaBroker, maxRetries); err != nil {
		logger.L().Error("cart events disabled", zap.Error(err))
		return events.Noop{}
	}

	return events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaCartTopic)
}
