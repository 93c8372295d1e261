// SPDX-License-Identifier: MIT

package ode

import "gonum.org/v1/gonum/floats"

// LinSpace returns n equally spaced times from tmin to tmax inclusive.
// n == 1 yields [tmin]; n <= 0 yields nil.
func LinSpace(tmin, tmax float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{tmin}
	}

	return floats.Span(make([]float64, n), tmin, tmax)
}
