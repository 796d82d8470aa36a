package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	Enabled bool
	// Burst is the bucket capacity; one token is refilled every Window/Burst.
	Burst  int
	Window time.Duration
	Prefix string
}

var limiterScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)
	return {allowed, tokens, retry_after_ms}
`)

// RateLimit is a per-client token bucket kept in Redis. It is a pass-through
// when disabled or when no Redis client is available, and it fails open if
// Redis errors mid-request.
func RateLimit(cfg RateLimitConfig, rdb *redis.Client, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil || cfg.Burst <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "ratelimit"
	}
	interval := cfg.Window / time.Duration(cfg.Burst)
	ttl := int(math.Ceil(cfg.Window.Seconds())) * 2

	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", prefix, c.FullPath(), c.ClientIP())
		res, err := limiterScript.Run(c.Request.Context(), rdb, []string{key},
			time.Now().UnixMilli(), cfg.Burst, interval.Milliseconds(), ttl).Int64Slice()
		if err != nil || len(res) != 3 {
			logger.Warn("Rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
		if res[0] == 1 {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(float64(res[2]) / 1000))
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse("too many requests, try again later"))
	}
}
