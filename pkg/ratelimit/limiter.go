package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/config"
	"github.com/sahana-dev/daansetu/pkg/logger"
)

// Counter increments a key and reports the hit count within the window.
// Backed by Redis in production; faked in tests.
type Counter interface {
	IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter is a fixed-window request limiter keyed by caller identity
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
	now     func() time.Time
}

// NewLimiter creates a limiter from config. A nil counter disables limiting.
func NewLimiter(counter Counter, cfg *config.RateLimitConfig) *Limiter {
	limit := 60
	window := time.Minute
	prefix := "rl"

	if cfg != nil {
		if cfg.RequestsPerWindow > 0 {
			limit = cfg.RequestsPerWindow
		}
		if cfg.WindowSeconds > 0 {
			window = time.Duration(cfg.WindowSeconds) * time.Second
		}
		if cfg.Prefix != "" {
			prefix = cfg.Prefix
		}
	}

	return &Limiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		now:     time.Now,
	}
}

// WithNow overrides the clock. Test hook.
func (l *Limiter) WithNow(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow reports whether the caller identified by key may proceed. Counter
// failures fail open: limiting is protection, not a ledger.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.counter == nil {
		return true
	}

	bucket := l.now().Unix() / int64(l.window.Seconds())
	windowKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	count, err := l.counter.IncrWithWindow(ctx, windowKey, l.window)
	if err != nil {
		logger.WithContext(ctx).Warn("rate limit counter unavailable",
			zap.Error(err))
		return true
	}
	return count <= int64(l.limit)
}

// Middleware enforces the limit per client IP
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), c.ClientIP()) {
			common.ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
