// SPDX-License-Identifier: MIT

package ode

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTimes indicates an empty report-time grid.
	ErrNoTimes = errors.New("ode: no report times")

	// ErrTimesNotMonotone indicates report times that decrease.
	ErrTimesNotMonotone = errors.New("ode: report times must be non-decreasing")

	// ErrEmptyState indicates a zero-length initial state.
	ErrEmptyState = errors.New("ode: empty initial state")

	// ErrStepTooSmall indicates the step controller underflowed its minimum.
	ErrStepTooSmall = errors.New("ode: step size below minimum")

	// ErrMaxSteps indicates the step budget was exhausted.
	ErrMaxSteps = errors.New("ode: maximum number of steps exceeded")

	// ErrNonFinite indicates a NaN or Inf in the state.
	ErrNonFinite = errors.New("ode: non-finite state")
)

// IntegrationError wraps a failure with the point where integration stopped.
type IntegrationError struct {
	Method string
	Time   float64
	Step   int
	Err    error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s: t=%g step=%d: %v", e.Method, e.Time, e.Step, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }
