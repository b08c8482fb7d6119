package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/shared/metrics"
	"realestate-backend/internal/shared/telemetry"
)

// RecordIDKey is set by handlers that operate on a single record.
const RecordIDKey = "recordId"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		durationMs := float64(latency.Microseconds()) / 1000.0
		metrics.ObserveRequest(status, durationMs)

		isAdmin := c.GetBool(isAdminKey)
		recordID, _ := c.Get(RecordIDKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": durationMs,
			"is_admin":    isAdmin,
			"admin_user":  AdminUserFromContext(c),
			"record_id":   recordID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
