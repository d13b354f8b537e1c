// Package broker provides option-chain data sources.
package broker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"options-strategist/internal/models"
)

// ChainProvider defines the interface for option chain sources. The
// zero expiry asks the provider for the nearest available one.
type ChainProvider interface {
	GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionChain, error)
}

// CircuitBreakerProvider wraps a ChainProvider with circuit breaker
// functionality so a flapping upstream fails fast instead of hanging
// every command.
type CircuitBreakerProvider struct {
	provider ChainProvider
	breaker  *gobreaker.CircuitBreaker
}

// CircuitBreakerSettings configures circuit breaker behavior.
type CircuitBreakerSettings struct {
	MaxRequests  uint32        // Max requests when half-open
	Interval     time.Duration // Reset counts interval
	Timeout      time.Duration // Open circuit duration
	MinRequests  uint32        // Min requests before tripping
	FailureRatio float64       // Failure ratio threshold
}

// NewCircuitBreakerProvider creates a CircuitBreakerProvider with
// sensible defaults.
func NewCircuitBreakerProvider(p ChainProvider) *CircuitBreakerProvider {
	return NewCircuitBreakerProviderWithSettings(p, CircuitBreakerSettings{
		MaxRequests:  3,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	})
}

// NewCircuitBreakerProviderWithSettings creates a CircuitBreakerProvider
// with custom settings.
func NewCircuitBreakerProviderWithSettings(p ChainProvider, settings CircuitBreakerSettings) *CircuitBreakerProvider {
	gbSettings := gobreaker.Settings{
		Name:        "ChainProviderCircuitBreaker",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
	}
	return &CircuitBreakerProvider{
		provider: p,
		breaker:  gobreaker.NewCircuitBreaker(gbSettings),
	}
}

// GetOptionChain fetches the chain through the circuit breaker.
func (c *CircuitBreakerProvider) GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionChain, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.provider.GetOptionChain(ctx, symbol, expiry)
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.OptionChain), nil
}

var _ ChainProvider = (*CircuitBreakerProvider)(nil)
