// SPDX-License-Identifier: MIT

package epidemic

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the single validation failure kind. Every sentinel
// below wraps it, and so do lower-level validation errors returned through
// this package, so errors.Is(err, ErrConfiguration) separates bad input
// from integrator failures.
var ErrConfiguration = errors.New("epidemic: configuration error")

var (
	// ErrLengthMismatch indicates initial-condition arrays of incompatible shape.
	ErrLengthMismatch = fmt.Errorf("%w: incompatible lengths", ErrConfiguration)

	// ErrInconsistentIC indicates a pair-level initial condition that the
	// node-level one cannot support.
	ErrInconsistentIC = fmt.Errorf("%w: inconsistent initial condition", ErrConfiguration)

	// ErrExclusiveParams indicates mutually exclusive parameters given together.
	ErrExclusiveParams = fmt.Errorf("%w: mutually exclusive parameters", ErrConfiguration)

	// ErrMissingIC indicates an initial condition that is required but absent.
	ErrMissingIC = fmt.Errorf("%w: missing initial condition", ErrConfiguration)

	// ErrBadTimes indicates an empty or reversed report window.
	ErrBadTimes = fmt.Errorf("%w: invalid report times", ErrConfiguration)

	// ErrBadParameter indicates a negative rate, a probability outside [0,1]
	// or a non-positive degree.
	ErrBadParameter = fmt.Errorf("%w: invalid parameter", ErrConfiguration)
)

// configErr tags a lower-level validation error as a configuration error.
func configErr(method string, err error) error {
	if errors.Is(err, ErrConfiguration) {
		return fmt.Errorf("%s: %w", method, err)
	}
	return fmt.Errorf("%s: %w: %w", method, ErrConfiguration, err)
}
