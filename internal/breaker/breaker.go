// Package breaker stops calling a destination that keeps failing within one push.
package breaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker wraps calls with circuit breaker functionality.
// A nil *Breaker is valid and simply runs every call.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker that opens after threshold consecutive failures.
// A threshold of 0 disables the breaker and returns nil.
// Errors for which isSuccessful returns true do not count as failures.
func New(name string, threshold uint32, isSuccessful func(error) bool) *Breaker {
	if threshold == 0 {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return isSuccessful != nil && isSuccessful(err)
		},
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker(settings),
	}
}

// Execute executes fn with circuit breaker protection
func (b *Breaker) Execute(fn func() error) error {
	if b == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// IsOpen reports whether err came from the breaker refusing the call
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
