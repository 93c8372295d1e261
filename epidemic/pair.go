// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/layout"
	"gonum.org/v1/gonum/mat"
)

const (
	MethodSISPairBased = "SISPairBased"
	MethodSIRPairBased = "SIRPairBased"
)

// pairIC returns the N×N pair initial conditions: the supplied matrix or
// the product of marginals, zeroed off the edges of g in either case.
func pairIC(method, name string, given mat.Matrix, a, b []float64, nbr [][]int) ([]float64, error) {
	n := len(a)
	out := make([]float64, n*n)
	if given != nil {
		r, c := given.Dims()
		if r != n || c != n {
			return nil, fmt.Errorf("%s: %s is %d×%d, want %d×%d: %w", method, name, r, c, n, n, ErrLengthMismatch)
		}
	}
	for i := 0; i < n; i++ {
		for _, j := range nbr[i] {
			if given != nil {
				out[i*n+j] = given.At(i, j)
			} else {
				out[i*n+j] = a[i] * b[j]
			}
		}
	}

	return out, nil
}

// pressure sets press[i] = Σ_{k∈N(i)} β_ik XY[i,k], the force of infection on
// i conditioned on i being susceptible, times X_i.
func (c *contacts) pressure(xy []float64, n int, press []float64) {
	for i := range press {
		var p float64
		for m, k := range c.nbr[i] {
			p += c.beta[i][m] * xy[i*n+k]
		}
		press[i] = p
	}
}

// SISPairBased integrates the pair-based SIS closure on g. Node state is
// Y_i; pair state is XY[i,j] = P(i susceptible, j infected) and
// XX[i,j] = P(both susceptible) on every edge, with triples closed as
// [S_i S_j I_k] ≈ XX[i,j]·XY[j,k]/X_j. Pair initial conditions default to
// the product of marginals (see WithPairs).
//
// Detail keys: "X", "Y", "XY", "XX".
func SISPairBased(ctx context.Context, g core.Network, y0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISPairBased
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	ni, err := s.nodeOrder(method, g)
	if err != nil {
		return nil, err
	}
	n := len(ni.nodes)
	if len(y0) != n {
		return nil, fmt.Errorf("%s: len(Y0)=%d for %d nodes: %w", method, len(y0), n, ErrLengthMismatch)
	}
	c, err := s.contacts(method, g, ni, tau, gamma)
	if err != nil {
		return nil, err
	}
	x0 := make([]float64, n)
	for i, v := range y0 {
		x0[i] = 1 - v
	}
	xy0, err := pairIC(method, "XY0", s.xy0, x0, y0, c.nbr)
	if err != nil {
		return nil, err
	}
	xx0, err := pairIC(method, "XX0", s.xx0, x0, x0, c.nbr)
	if err != nil {
		return nil, err
	}

	l, _ := layout.New(layout.Vector("Y", n), layout.Matrix("XY", n, n), layout.Matrix("XX", n, n))
	start, _ := l.Pack(y0, xy0, xx0)
	press := make([]float64, n)
	rhs := func(_ float64, v, dv []float64) {
		y, xy, xx := l.View(v, "Y"), l.View(v, "XY"), l.View(v, "XX")
		dy, dxy, dxx := l.View(dv, "Y"), l.View(dv, "XY"), l.View(dv, "XX")
		for i := range dxy {
			dxy[i], dxx[i] = 0, 0
		}
		c.pressure(xy, n, press)
		for i := 0; i < n; i++ {
			xi := 1 - y[i]
			dy[i] = press[i] - c.gamma[i]*y[i]
			for m, j := range c.nbr[i] {
				ij, ji := i*n+j, j*n+i
				xj := 1 - y[j]
				yx := xy[ji]
				yy := 1 - xy[ij] - xx[ij] - yx
				intoJ := press[j] - c.back(i, m)*xy[ji] // Σ_{k∈N(j)\i} β_jk XY[j,k]
				intoI := press[i] - c.beta[i][m]*xy[ij]   // Σ_{k∈N(i)\j} β_ik XY[i,k]

				dxy[ij] = -(c.beta[i][m]+c.gamma[j])*xy[ij] + c.gamma[i]*yy +
					safeDiv(intoJ*xx[ij], xj) - safeDiv(intoI*xy[ij], xi)
				dxx[ij] = c.gamma[i]*yx + c.gamma[j]*xy[ij] -
					safeDiv(intoJ*xx[ij], xj) - safeDiv(intoI*xx[ij], xi)
			}
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	ys := sol.series["Y"]
	T := len(sol.times)
	res := s.result(sol, "Y", "XY", "XX")
	res.Nodes = ni.nodes
	res.I = ys.Totals()
	res.S = totals(T, func(r int) float64 { return float64(n) - res.I[r] })
	if s.fullData {
		res.Detail["X"] = derive("X", n, 1, T, func(r int, out []float64) {
			for i, v := range ys.At(r) {
				out[i] = 1 - v
			}
		})
	}

	return res, nil
}

// SIRPairBased integrates the pair-based SIR closure on g with node state
// (X_i, Y_i) and edge pair state XY, XX as in SISPairBased. X0 defaults to
// 1 - Y0 (see WithSusceptible).
//
// Detail keys: "X", "Y", "Z", "XY", "XX".
func SIRPairBased(ctx context.Context, g core.Network, y0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRPairBased
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	ni, err := s.nodeOrder(method, g)
	if err != nil {
		return nil, err
	}
	n := len(ni.nodes)
	x0 := s.x0
	if x0 == nil {
		x0 = make([]float64, len(y0))
		for i, v := range y0 {
			x0[i] = 1 - v
		}
	}
	if len(y0) != n || len(x0) != n {
		return nil, fmt.Errorf("%s: len(X0)=%d len(Y0)=%d for %d nodes: %w", method, len(x0), len(y0), n, ErrLengthMismatch)
	}
	c, err := s.contacts(method, g, ni, tau, gamma)
	if err != nil {
		return nil, err
	}
	xy0, err := pairIC(method, "XY0", s.xy0, x0, y0, c.nbr)
	if err != nil {
		return nil, err
	}
	xx0, err := pairIC(method, "XX0", s.xx0, x0, x0, c.nbr)
	if err != nil {
		return nil, err
	}

	l, _ := layout.New(layout.Vector("X", n), layout.Vector("Y", n),
		layout.Matrix("XY", n, n), layout.Matrix("XX", n, n))
	start, _ := l.Pack(x0, y0, xy0, xx0)
	press := make([]float64, n)
	rhs := func(_ float64, v, dv []float64) {
		x, y, xy, xx := l.View(v, "X"), l.View(v, "Y"), l.View(v, "XY"), l.View(v, "XX")
		dx, dy, dxy, dxx := l.View(dv, "X"), l.View(dv, "Y"), l.View(dv, "XY"), l.View(dv, "XX")
		for i := range dxy {
			dxy[i], dxx[i] = 0, 0
		}
		c.pressure(xy, n, press)
		for i := 0; i < n; i++ {
			dx[i] = -press[i]
			dy[i] = press[i] - c.gamma[i]*y[i]
			for m, j := range c.nbr[i] {
				ij, ji := i*n+j, j*n+i
				intoJ := press[j] - c.back(i, m)*xy[ji]
				intoI := press[i] - c.beta[i][m]*xy[ij]

				dxy[ij] = -(c.beta[i][m]+c.gamma[j])*xy[ij] +
					safeDiv(intoJ*xx[ij], x[j]) - safeDiv(intoI*xy[ij], x[i])
				dxx[ij] = -safeDiv(intoJ*xx[ij], x[j]) - safeDiv(intoI*xx[ij], x[i])
			}
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	xs, ys := sol.series["X"], sol.series["Y"]
	T := len(sol.times)
	res := s.result(sol, "X", "Y", "XY", "XX")
	res.Nodes = ni.nodes
	res.S = xs.Totals()
	res.I = ys.Totals()
	res.R = totals(T, func(r int) float64 { return float64(n) - res.S[r] - res.I[r] })
	if s.fullData {
		res.Detail["Z"] = derive("Z", n, 1, T, func(r int, out []float64) {
			x, y := xs.At(r), ys.At(r)
			for i := range out {
				out[i] = 1 - x[i] - y[i]
			}
		})
	}

	return res, nil
}
