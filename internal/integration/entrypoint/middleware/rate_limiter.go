package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// LimitStore counts attempts per key in fixed windows.
type LimitStore interface {
	// Allow records an attempt and reports whether it is within the limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// KeyFunc derives the rate limit key of a request.
type KeyFunc func(c *gin.Context) string

// ClientIPKey keys requests by client IP.
func ClientIPKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

// UserKey keys requests by authenticated user, falling back to the client IP.
func UserKey(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	return ClientIPKey(c)
}

// RateLimiter enforces a fixed-window limit for one route group.
type RateLimiter struct {
	store          LimitStore
	name           string
	keyFunc        KeyFunc
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new IP-based rate limiter with default settings and in-memory counters.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(NewMemoryLimitStore(), "default", ClientIPKey, defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(store LimitStore, name string, keyFunc KeyFunc, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          store,
		name:           name,
		keyFunc:        keyFunc,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := rl.name + ":" + rl.keyFunc(c)
		allowed, err := rl.store.Allow(c.Request.Context(), key, rl.maxAttempts, rl.windowDuration)
		if err != nil {
			// Fail open: a broken counter must not lock users out
			slog.Warn("Rate limiter unavailable", "limiter", rl.name, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryLimitStore keeps counters in process memory.
type MemoryLimitStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryLimitStore creates an empty in-memory store.
func NewMemoryLimitStore() *MemoryLimitStore {
	return &MemoryLimitStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Allow checks if a request for the given key should be allowed.
func (s *MemoryLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		return true, nil
	}

	if entry.attempts < limit {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// Reset clears the store (useful for testing).
func (s *MemoryLimitStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries and reports how many were dropped.
func (s *MemoryLimitStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// RedisLimitStore shares counters between API instances through Redis.
type RedisLimitStore struct {
	client *redis.Client
}

// NewRedisLimitStore creates a Redis-backed store.
func NewRedisLimitStore(client *redis.Client) *RedisLimitStore {
	return &RedisLimitStore{client: client}
}

// Allow increments the key's counter, starting its window on the first attempt.
func (s *RedisLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := "ratelimit:" + key
	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(limit), nil
}
