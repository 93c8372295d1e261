// SPDX-License-Identifier: MIT

package epidemic

import (
	"github.com/katalvlaran/epinet/layout"
	"github.com/katalvlaran/epinet/ode"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of one model call.
//
// S, I and R are population totals per report time (expected counts for
// node-level models). R is nil for SIS models. Detail is populated only
// with WithFullData; each model documents its keys.
type Result struct {
	Times []float64
	S     []float64
	I     []float64
	R     []float64

	Nodes  []string    // vertex order of node-level details
	Edges  [][2]string // edge order of edge-level details
	Detail map[string]*layout.Series

	Stats ode.Statistics
}

// Estimate is the outcome of a fixed-point final-size calculation.
type Estimate struct {
	Value      float64
	Iterations int
	LastDelta  float64 // |x_n - x_{n-1}| of the final iterate
}

// derive builds a Series of a rows×cols section by evaluating fn at every
// report time r into out.
func derive(name string, rows, cols, times int, fn func(r int, out []float64)) *layout.Series {
	sec := layout.Section{Name: name, Rows: rows, Cols: cols}
	data := mat.NewDense(times, rows*cols, nil)
	for r := 0; r < times; r++ {
		fn(r, data.RawRowView(r))
	}

	return &layout.Series{Section: sec, Data: data}
}

// totals maps fn over report times.
func totals(times int, fn func(r int) float64) []float64 {
	out := make([]float64, times)
	for r := range out {
		out[r] = fn(r)
	}

	return out
}
