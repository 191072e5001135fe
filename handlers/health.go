package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/docshare/docshare/backend/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

var startTime = time.Now()

// RegisterHealth mounts /health (liveness) and /ready. /ready answers 503
// while any check fails.
func RegisterHealth(r gin.IRoutes, checks map[string]Check) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := make(map[string]bool, len(checks))
		for name, check := range checks {
			err := check(c.Request.Context())
			deps[name] = err == nil
			if err != nil {
				ready = false
				logger.Warnf("readiness: %s: %v", name, err)
			}
		}
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})
}
