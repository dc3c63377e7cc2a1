package middleware

import (
	"context"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// WindowCounter is the fixed-window counter backing the limiter; the redis
// cache implements it.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitMiddleware is a fixed-window limiter keyed by (client IP, route).
// It fails open: if the counter backend is down, requests pass.
type RateLimitMiddleware struct {
	counter WindowCounter
	cfg     config.RateLimitConfig
	logger  *zap.Logger
}

func NewRateLimitMiddleware(counter WindowCounter, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimitMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimitMiddleware{counter: counter, cfg: cfg, logger: logger}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.cfg.Enabled || m.cfg.Limit <= 0 || m.counter == nil {
			return c.Next()
		}

		key := "ratelimit:" + c.IP() + ":" + c.Route().Path
		n, err := m.counter.IncrWindow(c.Context(), key, m.cfg.Window)
		if err != nil {
			m.logger.Debug("rate limit counter unavailable", zap.Error(err))
			return c.Next()
		}

		if n > int64(m.cfg.Limit) {
			metrics.RateLimitedRequests.Inc()
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}

		return c.Next()
	}
}
