// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the limiter's Redis
// backend cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503.
	FailClosed
)

var errNoLimiterStore = errors.New("rate limiter has no redis client")

// throttlingDisabled reports whether the current environment opts out of
// rate limiting entirely. Local development, the test suite and stress runs
// all hammer single endpoints in ways production traffic never would.
func throttlingDisabled() bool {
	switch env := os.Getenv("APP_ENV"); env {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// CheckRateLimit counts one hit against the fixed window for (resource, id)
// and reports whether the caller is still under limit.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if throttlingDisabled() {
		return true, nil
	}
	if rdb == nil {
		return false, errNoLimiterStore
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	// First hit opens the window.
	if count == 1 {
		rdb.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// RateLimit caps a route at limit requests per window, fail-open. The
// optional name overrides the request path as the counter's resource label,
// so several routes can share one budget.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit backend-failure policy.
// Authenticated callers are counted per user ID, anonymous ones per remote
// IP.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		id := "ip:" + c.IP()
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		}

		allowed, err := CheckRateLimit(context.Background(), rdb, resource, id, limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.Warn("rate limiter unavailable, failing closed",
					"resource", resource, "path", c.Path(), "error", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
