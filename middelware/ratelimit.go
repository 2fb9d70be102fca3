package middelware

import (
	"net/http"
	"strconv"
	"time"

	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// allowScript counts requests in a fixed window; the first hit arms the
// window's expiry.
var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window per-client limiter backed by redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    logger.Logger
}

// NewRateLimiter builds the limiter from config. It returns nil when no
// redis address is configured, which disables limiting entirely.
func NewRateLimiter(cfg *models.Config, log logger.Logger) *RateLimiter {
	if cfg.RedisAddr == "" || cfg.RateLimitRequestsPerMinute <= 0 {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RateLimiter{
		client: client,
		limit:  cfg.RateLimitRequestsPerMinute,
		window: time.Minute,
		log:    log,
	}
}

// Limit returns a gin.HandlerFunc enforcing the per-IP request budget.
// Redis outages fail open: a gateway that cannot count must not reject.
func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		current, err := allowScript.Run(c.Request.Context(), r.client, []string{key}, r.window.Milliseconds()).Int64()
		if err != nil {
			r.log.Warnf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		remaining := int64(r.limit) - current
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(r.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if current > int64(r.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				StatusCode: http.StatusTooManyRequests,
				Message:    "Too many requests",
			})
			return
		}

		c.Next()
	}
}
