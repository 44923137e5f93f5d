package readlai

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures request pacing toward the remote endpoint.
type RateLimitConfig struct {
	RequestsPerMinute int // Maximum requests per minute
	BurstSize         int // Maximum burst size (default: 1)
}

// NewRateLimiter creates a token-bucket limiter from cfg.
func NewRateLimiter(cfg RateLimitConfig) *rate.Limiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60 // Default: 60 RPM
	}

	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// RateLimitedProvider wraps a Completer with rate limiting.
// Waiting for a token is the only added behavior; requests are never retried.
type RateLimitedProvider struct {
	completer Completer
	limiter   *rate.Limiter
}

// NewRateLimitedProvider creates a new rate-limited completer.
func NewRateLimitedProvider(completer Completer, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		completer: completer,
		limiter:   NewRateLimiter(cfg),
	}
}

// Complete implements Completer with rate limiting.
func (p *RateLimitedProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &TransportError{
			Message: "rate limit wait cancelled",
			Cause:   err,
		}
	}

	return p.completer.Complete(ctx, req)
}

// Limiter returns the underlying rate limiter for inspection.
func (p *RateLimitedProvider) Limiter() *rate.Limiter {
	return p.limiter
}

// Verify RateLimitedProvider implements Completer
var _ Completer = (*RateLimitedProvider)(nil)
