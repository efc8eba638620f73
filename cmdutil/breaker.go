// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Default circuit breaker settings.
const (
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
)

var circuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "pyenv_activate_circuit_breaker_state",
		Help: "Circuit breaker state for external tool queries (0=closed, 1=half-open, 2=open)",
	},
	[]string{"tool"},
)

// BreakerOptions configures a BreakerRunner.
type BreakerOptions struct {
	Name     string        // Name of the guarded tool, used for metrics
	Failures int           // Consecutive failures before the breaker opens; <= 0 disables tripping
	Timeout  time.Duration // How long the breaker stays open before half-opening
}

// BreakerRunner wraps a Runner with a circuit breaker so that a broken tool
// stops being invoked after repeated failures.
type BreakerRunner struct {
	inner   Runner
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerRunner creates a BreakerRunner around inner.
func NewBreakerRunner(inner Runner, opts BreakerOptions) *BreakerRunner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	failures := opts.Failures

	settings := gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if failures <= 0 {
				return false
			}
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about the tool's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			recordCircuitBreakerState(name, to)
		},
	}

	recordCircuitBreakerState(opts.Name, gobreaker.StateClosed)

	return &BreakerRunner{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Run executes the command through the circuit breaker.
// When the breaker is open the returned error wraps gobreaker.ErrOpenState.
func (r *BreakerRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	output, err := r.breaker.Execute(func() (interface{}, error) {
		return r.inner.Run(ctx, dir, name, args...)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s unavailable: %w", r.breaker.Name(), err)
		}
		if out, ok := output.([]byte); ok {
			return out, err
		}
		return nil, err
	}

	out, _ := output.([]byte)
	return out, nil
}

// State returns the current breaker state.
func (r *BreakerRunner) State() gobreaker.State {
	return r.breaker.State()
}

// recordCircuitBreakerState records the circuit breaker state.
func recordCircuitBreakerState(tool string, state gobreaker.State) {
	var stateValue float64
	switch state {
	case gobreaker.StateClosed:
		stateValue = 0
	case gobreaker.StateHalfOpen:
		stateValue = 1
	case gobreaker.StateOpen:
		stateValue = 2
	}

	circuitBreakerState.With(prometheus.Labels{
		"tool": tool,
	}).Set(stateValue)
}
