package workflow

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all requests of a Client.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows ratePerSecond sustained requests with the given
// burst. A non-positive rate disables limiting.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	if ratePerSecond <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
