// SPDX-License-Identifier: MIT

// File: methods_edges.go
// Role: Edge lifecycle, queries and attributes.
// Determinism:
//   - Edges() returns edges sorted by numeric sequence of Edge.ID ("e1" < "e2" < "e10").
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge connects u and v, creating missing endpoints.
//
// Steps:
//  1. Validate IDs and the loop constraint.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, reject a parallel edge.
//  4. Generate eid atomically, apply opts, store and mirror adjacency.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v string, opts ...EdgeOption) (string, error) {
	if u == "" || v == "" {
		return "", ErrEmptyVertexID
	}
	if u == v && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if err := g.AddVertex(u); err != nil {
		return "", err
	}
	if err := g.AddVertex(v); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if _, dup := g.adjacency[u][v]; dup {
		return "", ErrMultiEdgeNotAllowed
	}

	eid := nextEdgeID(g)
	e := &Edge{ID: eid, From: u, To: v, Attrs: make(map[string]float64)}
	for _, opt := range opts {
		opt(e)
	}
	g.edges[eid] = e
	g.adjacency[u][v] = eid
	g.adjacency[v][u] = eid

	return eid, nil
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[u][v]

	return ok
}

// Edge returns the edge joining u and v in either orientation.
func (g *Graph) Edge(u, v string) (*Edge, error) {
	if u == "" || v == "" {
		return nil, ErrEmptyVertexID
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.adjacency[u][v]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return g.edges[eid], nil
}

// Edges returns all edges in creation order.
// Treat returned *Edge values as read-only.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return edgeSeq(out[i].ID) < edgeSeq(out[j].ID) })

	return out
}

// EdgePairs returns the endpoints of every edge in creation order.
func (g *Graph) EdgePairs() [][2]string {
	edges := g.Edges()
	out := make([][2]string, len(edges))
	for i, e := range edges {
		out[i] = [2]string{e.From, e.To}
	}

	return out
}

// Size returns the number of edges.
func (g *Graph) Size() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// SetEdgeAttr stores value under label on the edge joining u and v.
func (g *Graph) SetEdgeAttr(u, v, label string, value float64) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	eid, ok := g.adjacency[u][v]
	if !ok {
		return ErrEdgeNotFound
	}
	g.edges[eid].Attrs[label] = value

	return nil
}

// EdgeAttr returns the attribute stored under label on the edge joining u and v.
//
// Errors:
//   - ErrEdgeNotFound if u and v are not adjacent.
//   - ErrAttrNotFound if the edge lacks the label.
func (g *Graph) EdgeAttr(u, v, label string) (float64, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.adjacency[u][v]
	if !ok {
		return 0, ErrEdgeNotFound
	}
	val, ok := g.edges[eid].Attrs[label]
	if !ok {
		return 0, ErrAttrNotFound
	}

	return val, nil
}

// nextEdgeID returns "e<N>" for the next value of the atomic counter.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// edgeSeq parses the numeric part of an edge ID produced by nextEdgeID.
func edgeSeq(id string) uint64 {
	n, _ := strconv.ParseUint(id[1:], 10, 64)

	return n
}
