package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware bounds throughput with a single process-global token
// bucket: one fixed key for all callers combined, not per-client. The bucket
// refills at requests-per-second up to burst capacity; Allow performs the
// check-and-consume atomically.
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			newErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
