package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per client IP, backed by redis so
// the limit holds across replicas. A redis outage fails open.
type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int64
}

func NewRateLimiter(rdb *redis.Client, window time.Duration, max int64) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		window: window,
		max:    max,
	}
}

func (r *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := "ratelimit:" + c.RealIP()

		count, err := r.rdb.Incr(ctx, key).Result()
		if err != nil {
			return next(c)
		}
		if count == 1 {
			r.rdb.Expire(ctx, key, r.window)
		}
		if count > r.max {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
		}
		return next(c)
	}
}
