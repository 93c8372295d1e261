// SPDX-License-Identifier: MIT

package rates

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// Option customizes a Policy.
type Option func(*Policy)

// WithTransmissionWeight scales τ by the edge attribute label.
// An empty label leaves transmission homogeneous.
func WithTransmissionWeight(label string) Option {
	return func(p *Policy) { p.transLabel = label }
}

// WithRecoveryWeight scales γ by the vertex attribute label.
// An empty label leaves recovery homogeneous.
func WithRecoveryWeight(label string) Option {
	return func(p *Policy) { p.recLabel = label }
}

// Policy is an immutable rate lookup bound to one network.
type Policy struct {
	tau, gamma float64
	transLabel string
	recLabel   string

	g     core.Network
	edgeW map[[2]string]float64 // both orientations
	nodeW map[string]float64
}

// New resolves a Policy for g.
//
// Errors:
//   - ErrNegativeRate if tau, gamma or any resolved weight is negative.
//   - ErrMissingWeight if a label is set and some edge (vertex) lacks it.
//
// Complexity: O(V + E).
func New(g core.Network, tau, gamma float64, opts ...Option) (*Policy, error) {
	const method = "rates.New"
	if tau < 0 || gamma < 0 {
		return nil, fmt.Errorf("%s: tau=%g gamma=%g: %w", method, tau, gamma, ErrNegativeRate)
	}
	p := &Policy{tau: tau, gamma: gamma, g: g}
	for _, opt := range opts {
		opt(p)
	}

	if p.transLabel != "" {
		pairs := g.EdgePairs()
		p.edgeW = make(map[[2]string]float64, 2*len(pairs))
		for _, e := range pairs {
			w, err := g.EdgeAttr(e[0], e[1], p.transLabel)
			if err != nil {
				return nil, fmt.Errorf("%s: edge %s-%s label %q: %w", method, e[0], e[1], p.transLabel, ErrMissingWeight)
			}
			if w < 0 {
				return nil, fmt.Errorf("%s: edge %s-%s weight %g: %w", method, e[0], e[1], w, ErrNegativeRate)
			}
			p.edgeW[e] = w
			p.edgeW[[2]string{e[1], e[0]}] = w
		}
	}
	if p.recLabel != "" {
		vs := g.Vertices()
		p.nodeW = make(map[string]float64, len(vs))
		for _, v := range vs {
			w, err := g.VertexAttr(v, p.recLabel)
			if err != nil {
				return nil, fmt.Errorf("%s: vertex %s label %q: %w", method, v, p.recLabel, ErrMissingWeight)
			}
			if w < 0 {
				return nil, fmt.Errorf("%s: vertex %s weight %g: %w", method, v, w, ErrNegativeRate)
			}
			p.nodeW[v] = w
		}
	}

	return p, nil
}

// Transmission returns the rate at which infected v infects susceptible u.
// Pairs that are not edges of a weighted policy yield 0.
func (p *Policy) Transmission(u, v string) float64 {
	if p.edgeW == nil {
		return p.tau
	}
	return p.tau * p.edgeW[[2]string{u, v}]
}

// Recovery returns the recovery rate of u.
func (p *Policy) Recovery(u string) float64 {
	if p.nodeW == nil {
		return p.gamma
	}
	return p.gamma * p.nodeW[u]
}

// Tau returns the scalar transmission rate.
func (p *Policy) Tau() float64 { return p.tau }

// Gamma returns the scalar recovery rate.
func (p *Policy) Gamma() float64 { return p.gamma }

// Network returns the network the policy is bound to.
func (p *Policy) Network() core.Network { return p.g }

// Homogeneous reports whether neither rate is weighted.
func (p *Policy) Homogeneous() bool { return p.edgeW == nil && p.nodeW == nil }
