package middleware

import (
	"voice-task-management/config"
	"voice-task-management/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New builds the shared gin middlewares. A disabled or non-positive rate
// limit turns RateLimit into a pass-through.
func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	mw := Middleware{l: l}
	if cfg.Enabled && cfg.PerMin > 0 {
		mw.limiter = newRateLimiter(cfg.PerMin)
	}
	return mw
}
