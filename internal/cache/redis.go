package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/services"
)

const defaultKeyPrefix = "questions:answer:"

// RedisStore keeps answers in Redis as JSON.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisStore creates a Redis-backed store and verifies the connection with a PING.
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration, logger *logrus.Entry) (*RedisStore, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get returns the answer stored under key. Redis failures are logged and reported as misses.
func (r *RedisStore) Get(ctx context.Context, key string) (services.Answer, bool) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).WithField("key", key).Error("cache get failed")
		}
		return services.Answer{}, false
	}

	var answer services.Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		r.logger.WithError(err).WithField("key", key).Error("cache unmarshal failed")
		return services.Answer{}, false
	}
	return answer, true
}

// Set stores answer under key with the configured TTL.
func (r *RedisStore) Set(ctx context.Context, key string, answer services.Answer) {
	data, err := json.Marshal(answer)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Error("cache marshal failed")
		return
	}
	if err := r.rdb.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Error("cache set failed")
	}
}

// Close closes the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
