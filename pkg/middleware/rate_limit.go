package middleware

import (
	"net/http"
	"sync"

	"github.com/docshare/docshare/backend/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterKey prefers the authenticated subject (NAT-friendly) and falls back
// to the client IP.
func limiterKey(c *gin.Context) string {
	if v, ok := c.Get("claims"); ok {
		if cm, ok := v.(map[string]interface{}); ok {
			if sub, ok := cm["sub"].(string); ok && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func rejectRateLimited(c *gin.Context, limiter, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
}

// RateLimitMiddleware returns a Gin middleware enforcing an in-memory
// token-bucket limit per key. rps = allowed events per second, burst =
// maximum tokens in bucket. Each call gets its own limiter store.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	var store sync.Map // map[string]*rate.Limiter
	return func(c *gin.Context) {
		v, _ := store.LoadOrStore(limiterKey(c), rate.NewLimiter(rate.Limit(rps), burst))
		if !v.(*rate.Limiter).Allow() {
			rejectRateLimited(c, "memory", "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
