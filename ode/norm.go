// SPDX-License-Identifier: MIT

package ode

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// errNorm returns the RMS of e scaled by atol + rtol·max(|y|,|yNew|).
// scratch must have len(e).
func errNorm(e, y, yNew, scratch []float64, rtol, atol float64) float64 {
	for i := range e {
		sc := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		scratch[i] = e[i] / sc
	}

	return floats.Norm(scratch, 2) / math.Sqrt(float64(len(e)))
}

// rmsNorm is the unweighted RMS used by the starting-step heuristic.
func rmsNorm(v, y []float64, rtol, atol float64, scratch []float64) float64 {
	for i := range v {
		scratch[i] = v[i] / (atol + rtol*math.Abs(y[i]))
	}

	return floats.Norm(scratch, 2) / math.Sqrt(float64(len(v)))
}

// initialStep picks a first trial step for a method of the given order
// (Hairer, Nørsett & Wanner, II.4). f0 = f(t, y). Costs one evaluation.
func initialStep(f Func, t float64, y, f0 []float64, order int, span float64, c *config) (float64, int) {
	if c.h0 > 0 {
		return math.Min(c.h0, span), 0
	}
	n := len(y)
	scratch := make([]float64, n)
	d0 := rmsNorm(y, y, c.rtol, c.atol, scratch)
	d1 := rmsNorm(f0, y, c.rtol, c.atol, scratch)
	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)

	y1 := make([]float64, n)
	floats.AddScaledTo(y1, y, h0, f0)
	f1 := make([]float64, n)
	f(t+h0, y1, f1)
	floats.Sub(f1, f0)
	d2 := rmsNorm(f1, y, c.rtol, c.atol, scratch) / h0

	var h1 float64
	if m := math.Max(d1, d2); m <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/m, 1/float64(order+1))
	}
	if math.IsNaN(h1) {
		h1 = h0
	}

	return math.Min(math.Min(100*h0, h1), span), 1
}
