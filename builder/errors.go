// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with "%s: <detail>: %w".

package builder

import "errors"

// ErrTooFewVertices indicates that a numeric parameter (n, degree, ...)
// is outside the allowed domain for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor requires a
// non-nil *rand.Rand (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrBadDegreeSequence indicates a degree sequence with a negative entry
// or an odd sum.
var ErrBadDegreeSequence = errors.New("builder: invalid degree sequence")

// ErrConstructFailed indicates that the builder exhausted permitted attempts
// or received a nil constructor.
var ErrConstructFailed = errors.New("builder: construction failed")
