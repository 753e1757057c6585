package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/logger"
)

// AccessLog logs every completed request with method, path, status and
// latency. Healthcheck and metrics probes are skipped to keep the log
// readable.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthcheck" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		kv := []interface{}{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"latency", latency,
			"request_id", c.GetString("request_id"),
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Server error", kv...)
		case status >= http.StatusBadRequest:
			log.Warn("Client error", kv...)
		default:
			log.Info("Request completed", kv...)
		}
	}
}
