package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/pkg/response"
)

type RateLimiter struct {
	redis *redis.Client
	log   logging.Logger
}

// NewRateLimiter returns a limiter backed by redisClient. A nil client
// disables limiting.
func NewRateLimiter(redisClient *redis.Client, log logging.Logger) *RateLimiter {
	return &RateLimiter{redis: redisClient, log: log}
}

// Limit creates a rate limiting middleware keyed by user, or by client IP
// when the request is anonymous
func (rl *RateLimiter) Limit(keyPrefix string, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.redis == nil || maxRequests <= 0 {
			return c.Next()
		}

		subject := GetUserID(c)
		if subject == "" {
			subject = "ip:" + c.IP()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, subject)
		ctx := c.UserContext()

		pipe := rl.redis.TxPipeline()
		incr := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			// If Redis fails, allow the request but log the error
			rl.log.Warnf("rate limiter unavailable: %v", err)
			return c.Next()
		}
		count, ttl := incr.Val(), ttlCmd.Val()

		// A key without expiry would block the subject forever, so any
		// request that finds one (a failed Expire included) sets it again.
		if ttl < 0 {
			if err := rl.redis.Expire(ctx, key, window).Err(); err != nil {
				rl.log.Warnf("rate limiter expire %s: %v", key, err)
			}
			ttl = window
		}

		if count > int64(maxRequests) {
			c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			return response.RateLimited(c)
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

		return c.Next()
	}
}

// LyricsLimit returns a rate limiter for lyrics generation
func (rl *RateLimiter) LyricsLimit(maxPerMin int) fiber.Handler {
	return rl.Limit("lyrics", maxPerMin, time.Minute)
}

// ExportLimit returns a rate limiter for PDF exports
func (rl *RateLimiter) ExportLimit(maxPerHour int) fiber.Handler {
	return rl.Limit("export", maxPerHour, time.Hour)
}
