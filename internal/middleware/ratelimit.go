package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitMiddleware allows limit requests per client ip per window.
// A nil client or a non-positive limit disables it; redis errors fail open.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration, m *metrics.Metrics, log *zap.Logger) fiber.Handler {
	if rdb == nil || limit <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rl:%s", c.IP())

		ctx := c.UserContext()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}

		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			m.RateLimited()
			if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Success: false,
				Message: dto.MsgTooManyRequests,
			})
		}

		return c.Next()
	}
}
