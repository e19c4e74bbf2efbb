package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/response"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/apperror"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const sweepInterval = 5 * time.Minute

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject requests when Redis is configured but failing
	FailClosed bool
	// Redis returns the client to count with; nil means in-memory only
	Redis func() *goredis.Client
	Logger *slog.Logger
}

// windowEntry tracks request count for a key (in-memory fallback)
type windowEntry struct {
	count   int
	resetAt time.Time
}

type memoryStore struct {
	mu        sync.Mutex
	entries   map[string]*windowEntry
	lastSweep time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*windowEntry), lastSweep: time.Now()}
}

func (s *memoryStore) incr(key string, window time.Duration, now time.Time) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > sweepInterval {
		for k, e := range s.entries {
			if now.After(e.resetAt) {
				delete(s.entries, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &windowEntry{resetAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	return entry.count, entry.resetAt
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// ContactRateLimitConfig limits how many enquiries one client can send per window
func ContactRateLimitConfig(limit int, window time.Duration, log *slog.Logger) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // an enquiry is worth more than strict spam protection
		KeyFunc:    clientIPKey,
		Redis:      redis.Client,
		Logger:     log,
	}
}

// GlobalRateLimitConfig applies a loose per-IP limit to every route
func GlobalRateLimitConfig(limit int, log *slog.Logger) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Minute,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
		Redis:     redis.Client,
		Logger:    log,
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	store := newMemoryStore()

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var (
			count   int
			resetAt time.Time
		)

		var client *goredis.Client
		if config.Redis != nil {
			client = config.Redis()
		}

		if client != nil {
			n, ttl, err := redis.IncrWindow(c.Request.Context(), client, fullKey, config.Window)
			if err != nil {
				config.Logger.WarnContext(c.Request.Context(), "rate limit store unavailable",
					"ip", c.ClientIP(), "path", c.FullPath(), "error", err.Error())
				if config.FailClosed {
					response.AbortWithError(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					return
				}
				count, resetAt = store.incr(fullKey, config.Window, now)
			} else {
				count, resetAt = n, now.Add(ttl)
			}
		} else {
			count, resetAt = store.incr(fullKey, config.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			config.Logger.WarnContext(c.Request.Context(), "rate limit triggered",
				"ip", c.ClientIP(), "path", c.FullPath(), "limit", config.Limit)

			appErr := apperror.TooManyRequests()
			response.AbortWithError(c, appErr.Code, appErr.Message)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Next()
	}
}
