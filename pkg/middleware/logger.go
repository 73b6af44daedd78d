package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/logger"
)

// RequestLogger emits one structured log line per request, tagged with the
// correlation ID carried on the request context
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}

		l := logger.WithContext(c.Request.Context())
		if len(c.Errors) > 0 {
			l.Error("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		l.Info("request handled", fields...)
	}
}
