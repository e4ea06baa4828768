package limiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

const (
	DefaultRPS = 20
	MinRPS     = 1
	MaxRPS     = 100
)

// Limiter throttles outbound AWS API calls across all service clients. It
// is injected rather than global so tests can run without one.
type Limiter struct {
	limiter *rate.Limiter
	logger  ports.Logger
}

func New(rps int, logger ports.Logger) *Limiter {
	if rps < MinRPS || rps > MaxRPS {
		if rps != 0 {
			logger.Warnf(context.Background(),
				"invalid AWS API rate %d RPS, using default %d (valid range %d-%d)",
				rps, DefaultRPS, MinRPS, MaxRPS)
		}
		rps = DefaultRPS
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  logger,
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			l.logger.Warnf(ctx, "rate limiter wait failed: %v", err)
		}
		return err
	}
	return nil
}
