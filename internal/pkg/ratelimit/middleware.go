package ratelimit

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

// Middleware limits requests per signed-in user, falling back to the client IP.
// keyFunc returns the user key or "" for anonymous requests.
func Middleware(limiter *RateLimiter, keyFunc func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = keyFunc(c)
		}
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !limiter.Allow(key) {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Rate limit exceeded. Try again later.")
			return
		}

		c.Next()
	}
}
