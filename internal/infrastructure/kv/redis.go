// internal/infrastructure/kv/redis.go
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// DialRedis opens the pooled Redis client shared by the store and the rate
// limiter and fails unless the server answers a ping
func DialRedis(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.GetRedisAddr(), err)
	}

	log.WithFields(logrus.Fields{
		"addr": cfg.GetRedisAddr(),
		"db":   cfg.Redis.DB,
	}).Info("Redis connection established")
	return rdb, nil
}

// RedisStore is the Store backed by Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value with expiration
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetNX stores value only when key is absent and reports whether it did
func (s *RedisStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

// Delete deletes one or more keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// List returns the list stored under key, head first
func (s *RedisStore) List(ctx context.Context, key string) ([][]byte, error) {
	vals, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", key, err)
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

// Commit applies ops inside MULTI/EXEC. Keys written by Create ops are
// WATCHed and checked first, so a concurrent writer aborts the batch.
func (s *RedisStore) Commit(ctx context.Context, ops ...Op) error {
	var created []string
	for _, op := range ops {
		if op.Kind == OpCreate {
			created = append(created, op.Key)
		}
	}

	if len(created) == 0 {
		if _, err := s.client.TxPipelined(ctx, queue(ctx, ops)); err != nil {
			return fmt.Errorf("redis commit: %w", err)
		}
		return nil
	}

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, created...).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, queue(ctx, ops))
		return err
	}, created...)
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: %v", ErrConflict, created)
	case err != nil:
		return fmt.Errorf("redis commit: %w", err)
	}
	return nil
}

func queue(ctx context.Context, ops []Op) func(redis.Pipeliner) error {
	return func(pipe redis.Pipeliner) error {
		for _, op := range ops {
			switch op.Kind {
			case OpSet, OpCreate:
				pipe.Set(ctx, op.Key, op.Value, op.TTL)
			case OpDelete:
				pipe.Del(ctx, op.Key)
			case OpPush:
				pipe.LPush(ctx, op.Key, op.Value)
			default:
				return fmt.Errorf("unknown op kind %d", op.Kind)
			}
		}
		return nil
	}
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
