// SPDX-License-Identifier: MIT

package rates

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every rate-policy validation failure.
var ErrConfiguration = errors.New("rates: configuration error")

var (
	// ErrMissingWeight indicates a labelled weight absent on some edge or vertex.
	ErrMissingWeight = fmt.Errorf("%w: weight label missing", ErrConfiguration)

	// ErrNegativeRate indicates a negative τ, γ or weight.
	ErrNegativeRate = fmt.Errorf("%w: negative rate", ErrConfiguration)
)
