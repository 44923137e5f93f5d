package provider

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	Name             string        // Breaker name used in logs (default: "completer")
	FailureThreshold uint32        // Consecutive transport failures before opening (default: 5)
	OpenTimeout      time.Duration // Time spent open before a trial request (default: 30s)
	Logger           *zap.Logger   // State change logger (default: no-op)
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "completer",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// BreakerProvider wraps a Completer with a circuit breaker. Only transport
// failures count against the endpoint; a missing key does not trip it.
type BreakerProvider struct {
	completer Completer
	cb        *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps completer with a circuit breaker.
func NewBreakerProvider(completer Completer, cfg BreakerConfig) *BreakerProvider {
	defaults := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !readlai.IsTransportError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerProvider{completer: completer, cb: cb}
}

// Complete forwards the request unless the breaker is open.
func (p *BreakerProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.completer.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &readlai.TransportError{Message: "endpoint unavailable", Cause: err}
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the current breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}

// Verify BreakerProvider implements Completer
var _ Completer = (*BreakerProvider)(nil)
