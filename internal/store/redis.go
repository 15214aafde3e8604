package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"

	"github.com/abhisek/belajar/internal/progress"
)

// RedisAdapter keeps the learner state as a JSON string at the storage
// key in Redis.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

var _ progress.Adapter = (*RedisAdapter)(nil)

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// NewRedisAdapter creates a client for url. It does not connect; an
// unreachable server shows up as Load and Save errors.
func NewRedisAdapter(url string) (*RedisAdapter, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	opts.MaxRetries = 1

	return &RedisAdapter{client: redis.NewClient(opts), key: progress.StorageKey}, nil
}

// Ping checks that the server is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close shuts down the client.
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}

func (r *RedisAdapter) Load(ctx context.Context) (progress.State, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return progress.NewState(), nil
	}
	if err != nil {
		return progress.NewState(), fmt.Errorf("get state: %w", err)
	}
	return DecodeStateValue(gjson.ParseBytes(raw))
}

func (r *RedisAdapter) Save(ctx context.Context, s progress.State) error {
	value, err := json.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.client.Set(ctx, r.key, value, 0).Err(); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}
