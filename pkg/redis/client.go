package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no Redis URL was provided
var ErrNotConfigured = errors.New("redis: UPSTASH_REDIS_URL not configured")

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://... or rediss://... for TLS (Upstash)
	Password string // overrides the password embedded in URL
}

// Client returns the shared Redis client, or nil when Redis is not in use.
func Client() *redis.Client {
	return client
}

// Options turns cfg into go-redis options. TLS follows the rediss scheme.
func Options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	return opts, nil
}

// Initialize connects the shared client once. On failure Client stays nil
// and callers fall back to in-memory state.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		opts, err := Options(cfg)
		if err != nil {
			clientErr = err
			return
		}

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})

	return clientErr
}

// Close closes the Redis connection gracefully.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck returns nil if Redis answers a ping.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return errors.New("redis: client not initialized")
	}
	return client.Ping(ctx).Err()
}
