package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitMessage is returned once a client exceeds its submission budget
const RateLimitMessage = "送信回数が多すぎます。しばらくしてから再度お試しください"

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis and the in-memory store
	KeyPrefix string
	// Whether to reject requests when Redis errors instead of falling back
	FailClosed bool
	// Redis returns the shared client, nil meaning in-memory only (default: redis.Client)
	Redis func() *goredis.Client
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// inMemoryStore for rate limiting (fallback when Redis unavailable)
var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// startCleanup runs a background goroutine to clean up expired entries
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value any) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// ContactRateLimitConfig limits contact submissions per client IP
func ContactRateLimitConfig(limit int, window time.Duration, failClosed bool) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: failClosed,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses Redis when available, falls back to in-memory when not
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)
	if config.Redis == nil {
		config.Redis = redis.Client
	}

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}

		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time
		var err error

		if redisClient := config.Redis(); redisClient != nil {
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				logger.Log.Warn("Rate limit store unavailable", "error", err, "fail_closed", config.FailClosed)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, GenericErrorMessage)
					c.Abort()
					return
				}
				count, resetAt = checkRateLimitInMemory(fullKey, config, now)
			}
		} else {
			count, resetAt = checkRateLimitInMemory(fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit triggered",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"))

			response.Error(c, http.StatusTooManyRequests, RateLimitMessage)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]any)
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// checkRateLimitInMemory checks rate limit using in-memory store (fallback)
func checkRateLimitInMemory(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	entryI, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(config.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}
