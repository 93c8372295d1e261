// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/layout"
)

// Model names used in logs and errors.
const (
	MethodSISIndividualBased = "SISIndividualBased"
	MethodSIRIndividualBased = "SIRIndividualBased"
)

// SISIndividualBased integrates the individual-based SIS system
//
//	dY_i/dt = Σ_j β_ij (1 - Y_i) Y_j - γ_i Y_i
//
// where Y_i is the probability node i is infected. y0 follows the node
// order (WithNodeList, default g.Vertices()).
//
// Detail keys: "X" (susceptible probabilities), "Y".
func SISIndividualBased(ctx context.Context, g core.Network, y0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISIndividualBased
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

	l, _ := layout.New(layout.Vector("Y", n))
	start, _ := l.Pack(y0)
	rhs := func(_ float64, y, dy []float64) {
		for i := 0; i < n; i++ {
			var inf float64
			for m, j := range c.nbr[i] {
				inf += c.beta[i][m] * y[j]
			}
			dy[i] = inf*(1-y[i]) - c.gamma[i]*y[i]
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	ys := sol.series["Y"]
	T := len(sol.times)
	res := s.result(sol, "Y")
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

// SIRIndividualBased integrates the individual-based SIR system
//
//	dX_i/dt = -X_i Σ_j β_ij Y_j
//	dY_i/dt = X_i Σ_j β_ij Y_j - γ_i Y_i
//
// with X_i, Y_i the probabilities node i is susceptible, infected.
//
// Detail keys: "X", "Y", "Z" (recovered probabilities).
func SIRIndividualBased(ctx context.Context, g core.Network, x0, y0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRIndividualBased
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	ni, err := s.nodeOrder(method, g)
	if err != nil {
		return nil, err
	}
	n := len(ni.nodes)
	if len(x0) != n || len(y0) != n {
		return nil, fmt.Errorf("%s: len(X0)=%d len(Y0)=%d for %d nodes: %w", method, len(x0), len(y0), n, ErrLengthMismatch)
	}
	c, err := s.contacts(method, g, ni, tau, gamma)
	if err != nil {
		return nil, err
	}

	l, _ := layout.New(layout.Vector("X", n), layout.Vector("Y", n))
	start, _ := l.Pack(x0, y0)
	rhs := func(_ float64, v, dv []float64) {
		x, y := v[:n], v[n:]
		dx, dy := dv[:n], dv[n:]
		for i := 0; i < n; i++ {
			var inf float64
			for m, j := range c.nbr[i] {
				inf += c.beta[i][m] * y[j]
			}
			dx[i] = -x[i] * inf
			dy[i] = -dx[i] - c.gamma[i]*y[i]
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	xs, ys := sol.series["X"], sol.series["Y"]
	T := len(sol.times)
	res := s.result(sol, "X", "Y")
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

// SISIndividualBasedPureIC runs SISIndividualBased with the index nodes
// infected with certainty and every other node susceptible.
func SISIndividualBasedPureIC(ctx context.Context, g core.Network, indexNodes []string, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISIndividualBased
	s := newSettings(opts...)
	ni, err := s.nodeOrder(method, g)
	if err != nil {
		return nil, err
	}
	y0, err := indicator(method, ni, indexNodes)
	if err != nil {
		return nil, err
	}

	return SISIndividualBased(ctx, g, y0, tau, gamma, opts...)
}

// SIRIndividualBasedPureIC runs SIRIndividualBased with the index nodes
// infected with certainty. A nil initialSusceptible makes every other node
// susceptible; otherwise only the listed nodes are, and the rest start recovered.
func SIRIndividualBasedPureIC(ctx context.Context, g core.Network, indexNodes, initialSusceptible []string, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRIndividualBased
	s := newSettings(opts...)
	ni, err := s.nodeOrder(method, g)
	if err != nil {
		return nil, err
	}
	y0, err := indicator(method, ni, indexNodes)
	if err != nil {
		return nil, err
	}
	var x0 []float64
	if initialSusceptible == nil {
		x0 = make([]float64, len(y0))
		for i, v := range y0 {
			x0[i] = 1 - v
		}
	} else if x0, err = indicator(method, ni, initialSusceptible); err != nil {
		return nil, err
	}

	return SIRIndividualBased(ctx, g, x0, y0, tau, gamma, opts...)
}

// indicator returns 1 at the positions of members and 0 elsewhere.
func indicator(method string, ni *nodeIndex, members []string) ([]float64, error) {
	out := make([]float64, len(ni.nodes))
	for _, u := range members {
		i, ok := ni.pos[u]
		if !ok {
			return nil, configErr(method, fmt.Errorf("node %q: %w", u, core.ErrVertexNotFound))
		}
		out[i] = 1
	}

	return out, nil
}
