// SPDX-License-Identifier: MIT

package degree

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every input-validation failure in this package.
var ErrConfiguration = errors.New("degree: configuration error")

var (
	// ErrUnobservedDegree indicates a lookup of a degree absent from an observed-degree Index.
	ErrUnobservedDegree = fmt.Errorf("%w: degree not observed", ErrConfiguration)

	// ErrDegreeMismatch indicates per-degree arrays whose lengths disagree.
	ErrDegreeMismatch = fmt.Errorf("%w: degree arrays differ in length", ErrConfiguration)

	// ErrEmptyNetwork indicates a network without vertices.
	ErrEmptyNetwork = fmt.Errorf("%w: network has no vertices", ErrConfiguration)

	// ErrBadFraction indicates an initial infected fraction outside [0,1].
	ErrBadFraction = fmt.Errorf("%w: fraction outside [0,1]", ErrConfiguration)
)

// CheckLengths returns ErrDegreeMismatch, tagged with method, unless all
// arrays have the same length.
func CheckLengths(method string, arrays ...[]float64) error {
	for i := 1; i < len(arrays); i++ {
		if len(arrays[i]) != len(arrays[0]) {
			return fmt.Errorf("%s: len=%d vs len=%d: %w", method, len(arrays[0]), len(arrays[i]), ErrDegreeMismatch)
		}
	}

	return nil
}
