package executor

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out delete requests to stay under the management
// server's request-rate ceiling (throttling is observed after roughly
// 50 unspaced requests). The pause runs after every deletion,
// unconditionally, including the last one of the run.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer whose every Wait spans one full interval.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// Drain the initial token so the first Wait blocks like the rest.
	limiter.Allow()
	return &Pacer{limiter: limiter}
}

// Wait blocks for one pacing interval.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
