// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/layout"
)

const MethodSIRPairBased2 = "SIRPairBased2"

// incidence is one edge seen from one of its endpoints.
type incidence struct {
	edge  int
	first bool    // the node is edge[0]
	beta  float64 // rate at which the other endpoint infects the node
}

// link is an edge (i,j) by node position with both directed rates:
// bij is the rate at which j infects i.
type link struct {
	i, j     int
	bij, bji float64
}

// SIRPairBased2 is the pair-based SIR closure stored per edge instead of
// per node pair. Its state is [X(N), Y(N), XY(E), YX(E), XX(E)] where, for
// edge e = (u,v), XY[e] = P(u S, v I), YX[e] = P(u I, v S), XX[e] = P(both S).
//
// The node initial condition is either WithRho or WithInfected (with an
// optional WithSusceptible, default 1 - Y0); the latter needs WithNodeList.
// WithEdgeIC must give all three edge arrays or none and then needs
// WithEdgeList; each edge probability may not exceed the product of its
// node probabilities.
//
// Detail keys: "X", "Y", "Z", "XY", "YX", "XX", "YY".
func SIRPairBased2(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRPairBased2
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	x0, y0, ni, err := s.pair2Nodes(method, g)
	if err != nil {
		return nil, err
	}
	edges, exy, eyx, exx, err := s.pair2Edges(method, g, ni, x0, y0)
	if err != nil {
		return nil, err
	}
	c, err := s.contacts(method, g, ni, tau, gamma)
	if err != nil {
		return nil, err
	}

	n, m := len(ni.nodes), len(edges)
	links := make([]link, m)
	inc := make([][]incidence, n)
	for e, uv := range edges {
		i, j := ni.pos[uv[0]], ni.pos[uv[1]]
		links[e] = link{i: i, j: j, bij: rateFrom(c, i, j), bji: rateFrom(c, j, i)}
		inc[i] = append(inc[i], incidence{edge: e, first: true, beta: links[e].bij})
		inc[j] = append(inc[j], incidence{edge: e, first: false, beta: links[e].bji})
	}

	l, _ := layout.New(layout.Vector("X", n), layout.Vector("Y", n),
		layout.Vector("XY", m), layout.Vector("YX", m), layout.Vector("XX", m))
	start, _ := l.Pack(x0, y0, exy, eyx, exx)
	press := make([]float64, n)
	rhs := func(_ float64, v, dv []float64) {
		x, y := l.View(v, "X"), l.View(v, "Y")
		xy, yx, xx := l.View(v, "XY"), l.View(v, "YX"), l.View(v, "XX")
		dx, dy := l.View(dv, "X"), l.View(dv, "Y")
		dxy, dyx, dxx := l.View(dv, "XY"), l.View(dv, "YX"), l.View(dv, "XX")

		// press[i] = Σ_w β_iw P(i S, w I)
		for i := range press {
			var p float64
			for _, in := range inc[i] {
				if in.first {
					p += in.beta * xy[in.edge]
				} else {
					p += in.beta * yx[in.edge]
				}
			}
			press[i] = p
			dx[i] = -p
			dy[i] = p - c.gamma[i]*y[i]
		}
		for e, lk := range links {
			i, j, bij, bji := lk.i, lk.j, lk.bij, lk.bji
			intoI := press[i] - bij*xy[e] // Σ_{w∈N(u)\v}
			intoJ := press[j] - bji*yx[e] // Σ_{w∈N(v)\u}

			dxy[e] = -(bij+c.gamma[j])*xy[e] - safeDiv(intoI*xy[e], x[i]) + safeDiv(intoJ*xx[e], x[j])
			dyx[e] = -(bji+c.gamma[i])*yx[e] + safeDiv(intoI*xx[e], x[i]) - safeDiv(intoJ*yx[e], x[j])
			dxx[e] = -safeDiv(intoI*xx[e], x[i]) - safeDiv(intoJ*xx[e], x[j])
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	xs, ys := sol.series["X"], sol.series["Y"]
	T := len(sol.times)
	res := s.result(sol, "X", "Y", "XY", "YX", "XX")
	res.Nodes = ni.nodes
	res.Edges = edges
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
		xyS, yxS, xxS := sol.series["XY"], sol.series["YX"], sol.series["XX"]
		res.Detail["YY"] = derive("YY", m, 1, T, func(r int, out []float64) {
			a, b, cc := xyS.At(r), yxS.At(r), xxS.At(r)
			for e := range out {
				out[e] = 1 - a[e] - b[e] - cc[e]
			}
		})
	}

	return res, nil
}

// rateFrom returns the rate at which position j infects position i. It
// scans the neighbour list, so callers resolve rates once per edge.
func rateFrom(c *contacts, i, j int) float64 {
	for m, k := range c.nbr[i] {
		if k == j {
			return c.beta[i][m]
		}
	}
	return 0
}

func (s *settings) pair2Nodes(method string, g core.Network) (x0, y0 []float64, ni *nodeIndex, err error) {
	switch {
	case s.rho != nil && s.y0 != nil:
		return nil, nil, nil, fmt.Errorf("%s: rho and Y0: %w", method, ErrExclusiveParams)
	case s.rho == nil && s.y0 == nil:
		return nil, nil, nil, fmt.Errorf("%s: need rho or Y0: %w", method, ErrMissingIC)
	case s.y0 != nil && s.nodes == nil:
		return nil, nil, nil, fmt.Errorf("%s: Y0 order is ambiguous without a node list: %w", method, ErrMissingIC)
	}
	if ni, err = s.nodeOrder(method, g); err != nil {
		return nil, nil, nil, err
	}
	n := len(ni.nodes)

	if s.rho != nil {
		rho, err := s.graphRho(method, g)
		if err != nil {
			return nil, nil, nil, err
		}
		y0 = make([]float64, n)
		x0 = make([]float64, n)
		for i := range y0 {
			y0[i], x0[i] = rho, 1-rho
		}
		return x0, y0, ni, nil
	}

	y0 = s.y0
	x0 = s.x0
	if x0 == nil {
		x0 = make([]float64, len(y0))
		for i, v := range y0 {
			x0[i] = 1 - v
		}
	}
	if len(y0) != n || len(x0) != n {
		return nil, nil, nil, fmt.Errorf("%s: len(X0)=%d len(Y0)=%d for %d nodes: %w", method, len(x0), len(y0), n, ErrLengthMismatch)
	}

	return x0, y0, ni, nil
}

func (s *settings) pair2Edges(method string, g core.Network, ni *nodeIndex, x0, y0 []float64) (edges [][2]string, xy, yx, xx []float64, err error) {
	given := 0
	for _, a := range [][]float64{s.exy, s.eyx, s.exx} {
		if a != nil {
			given++
		}
	}
	if given != 0 && given != 3 {
		return nil, nil, nil, nil, fmt.Errorf("%s: need all of XY0, YX0, XX0 or none: %w", method, ErrMissingIC)
	}
	if given == 3 && s.edges == nil {
		return nil, nil, nil, nil, fmt.Errorf("%s: edge order is ambiguous without an edge list: %w", method, ErrMissingIC)
	}

	edges = s.edges
	if edges == nil {
		edges = g.EdgePairs()
	}
	if err := coversEdges(method, g, edges); err != nil {
		return nil, nil, nil, nil, err
	}

	m := len(edges)
	if given == 0 {
		xy, yx, xx = make([]float64, m), make([]float64, m), make([]float64, m)
		for e, uv := range edges {
			i, j := ni.pos[uv[0]], ni.pos[uv[1]]
			xy[e] = x0[i] * y0[j]
			yx[e] = y0[i] * x0[j]
			xx[e] = x0[i] * x0[j]
		}
		return edges, xy, yx, xx, nil
	}

	xy, yx, xx = s.exy, s.eyx, s.exx
	if len(xy) != m || len(yx) != m || len(xx) != m {
		return nil, nil, nil, nil, fmt.Errorf("%s: edge arrays %d/%d/%d for %d edges: %w", method, len(xy), len(yx), len(xx), m, ErrLengthMismatch)
	}
	for e, uv := range edges {
		i, j := ni.pos[uv[0]], ni.pos[uv[1]]
		if xy[e] > x0[i]*y0[j] || yx[e] > y0[i]*x0[j] || xx[e] > x0[i]*x0[j] {
			return nil, nil, nil, nil, fmt.Errorf("%s: edge %s-%s: edge probabilities inconsistent with node probabilities: %w", method, uv[0], uv[1], ErrInconsistentIC)
		}
	}

	return edges, xy, yx, xx, nil
}

// coversEdges checks that edges lists every edge of g exactly once, in either orientation.
func coversEdges(method string, g core.Network, edges [][2]string) error {
	if len(edges) != g.Size() {
		return fmt.Errorf("%s: edge list has %d entries for %d edges: %w", method, len(edges), g.Size(), ErrLengthMismatch)
	}
	seen := make(map[[2]string]bool, len(edges))
	for _, uv := range edges {
		if _, err := g.EdgeAttr(uv[0], uv[1], ""); errors.Is(err, core.ErrEdgeNotFound) {
			return configErr(method, fmt.Errorf("edge %s-%s: %w", uv[0], uv[1], core.ErrEdgeNotFound))
		}
		key := uv
		if key[1] < key[0] {
			key = [2]string{uv[1], uv[0]}
		}
		if seen[key] {
			return fmt.Errorf("%s: edge %s-%s listed twice: %w", method, uv[0], uv[1], ErrLengthMismatch)
		}
		seen[key] = true
	}

	return nil
}
