package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	"github.com/gracepath/core/internal/pkg/response"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// SetRateLimitHeaders writes the limiter state of res onto the response.
func SetRateLimitHeaders(c *gin.Context, res ratelimit.Result) {
	if res.Limit <= 0 {
		return
	}
	c.Header(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
	c.Header(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
	c.Header(HeaderRateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))
}

// RateLimit enforces the quota of endpoint for routes whose handlers do not
// check the limiter themselves.
func RateLimit(limiter *ratelimit.Limiter, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Check(c.Request.Context(), Subject(c), endpoint)
		SetRateLimitHeaders(c, res)
		if !res.Allowed {
			response.TooManyRequests(c, "too many requests, please slow down", RetryAfterSeconds(res, time.Now()))
			return
		}
		c.Next()
	}
}

// RetryAfterSeconds converts the wait of a rejected result to whole seconds.
func RetryAfterSeconds(res ratelimit.Result, now time.Time) int {
	return int(res.RetryAfter(now) / time.Second)
}
