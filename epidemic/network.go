// SPDX-License-Identifier: MIT

package epidemic

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/rates"
)

// nodeIndex is the vertex order of node-level models and its inverse.
type nodeIndex struct {
	nodes []string
	pos   map[string]int
}

func (s *settings) nodeOrder(method string, g core.Network) (*nodeIndex, error) {
	if g.Order() == 0 {
		return nil, configErr(method, degree.ErrEmptyNetwork)
	}
	nodes := s.nodes
	if nodes == nil {
		nodes = g.Vertices()
	}
	ni := &nodeIndex{nodes: nodes, pos: make(map[string]int, len(nodes))}
	for i, u := range nodes {
		if _, dup := ni.pos[u]; dup {
			return nil, fmt.Errorf("%s: node %q listed twice: %w", method, u, ErrLengthMismatch)
		}
		ni.pos[u] = i
	}
	if len(nodes) != g.Order() {
		return nil, fmt.Errorf("%s: node list has %d entries for %d vertices: %w", method, len(nodes), g.Order(), ErrLengthMismatch)
	}
	for _, u := range nodes {
		if _, err := g.Degree(u); err != nil {
			return nil, configErr(method, fmt.Errorf("node %q: %w", u, err))
		}
	}

	return ni, nil
}

// neighborIndex returns, per position, the positions of its neighbours.
func (ni *nodeIndex) neighborIndex(g core.Network) ([][]int, error) {
	out := make([][]int, len(ni.nodes))
	for i, u := range ni.nodes {
		nbrs, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		out[i] = make([]int, len(nbrs))
		for j, v := range nbrs {
			out[i][j] = ni.pos[v]
		}
	}

	return out, nil
}

// graphRho returns the configured ρ or 1/N.
func (s *settings) graphRho(method string, g core.Network) (float64, error) {
	if g.Order() == 0 {
		return 0, configErr(method, degree.ErrEmptyNetwork)
	}
	if s.rho == nil {
		return 1 / float64(g.Order()), nil
	}
	if *s.rho < 0 || *s.rho > 1 {
		return 0, fmt.Errorf("%s: rho=%g: %w", method, *s.rho, ErrBadParameter)
	}

	return *s.rho, nil
}

// degreesOf returns the degree at each position of an n-long per-degree array.
func (s *settings) degreesOf(method string, n int) ([]float64, error) {
	if s.index == nil {
		return degree.Dense(n - 1).Floats(), nil
	}
	if s.index.Len() != n {
		return nil, fmt.Errorf("%s: degree index has %d positions for %d classes: %w", method, s.index.Len(), n, ErrLengthMismatch)
	}

	return s.index.Floats(), nil
}

// contacts is the rate-weighted adjacency of a node-level model, resolved
// once per call so the evaluators never touch the graph.
type contacts struct {
	nbr   [][]int     // nbr[i] positions adjacent to i
	beta  [][]float64 // beta[i][m] rate at which nbr[i][m] infects i
	rev   [][]int     // rev[i][m] position of i in nbr[nbr[i][m]]
	gamma []float64   // recovery rate of i
}

func (s *settings) contacts(method string, g core.Network, ni *nodeIndex, tau, gamma float64) (*contacts, error) {
	policy, err := rates.New(g, tau, gamma,
		rates.WithTransmissionWeight(s.transW),
		rates.WithRecoveryWeight(s.recW))
	if err != nil {
		return nil, configErr(method, err)
	}
	nbr, err := ni.neighborIndex(g)
	if err != nil {
		return nil, configErr(method, err)
	}
	c := &contacts{
		nbr:   nbr,
		beta:  make([][]float64, len(nbr)),
		rev:   make([][]int, len(nbr)),
		gamma: make([]float64, len(nbr)),
	}
	slot := make([]map[int]int, len(nbr))
	for i := range nbr {
		slot[i] = make(map[int]int, len(nbr[i]))
		for m, j := range nbr[i] {
			slot[i][j] = m
		}
	}
	for i, u := range ni.nodes {
		c.gamma[i] = policy.Recovery(u)
		c.beta[i] = make([]float64, len(nbr[i]))
		c.rev[i] = make([]int, len(nbr[i]))
		for m, j := range nbr[i] {
			c.beta[i][m] = policy.Transmission(u, ni.nodes[j])
			c.rev[i][m] = slot[j][i]
		}
	}

	return c, nil
}

// back returns the rate at which i infects its m-th neighbour j.
func (c *contacts) back(i, m int) float64 {
	return c.beta[c.nbr[i][m]][c.rev[i][m]]
}
