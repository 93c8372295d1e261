// SPDX-License-Identifier: MIT

// File: methods_clone.go
// Role: Deep copies of a network.
// Determinism:
//   - Clone carries nextEdgeID so edge IDs added to the clone never collide.
// Concurrency:
//   - Read locks on the source only.

package core

import "sync/atomic"

// Clone returns a deep copy: configuration, vertices, edges, attributes and adjacency.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := NewGraph()
	clone.allowLoops = g.allowLoops
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	for id, v := range g.vertices {
		clone.vertices[id] = &Vertex{ID: id, Attrs: copyAttrs(v.Attrs)}
		clone.adjacency[id] = make(map[string]string, len(g.adjacency[id]))
	}
	for eid, e := range g.edges {
		clone.edges[eid] = &Edge{ID: eid, From: e.From, To: e.To, Attrs: copyAttrs(e.Attrs)}
	}
	for u, nbrs := range g.adjacency {
		for v, eid := range nbrs {
			clone.adjacency[u][v] = eid
		}
	}

	return clone
}

func copyAttrs(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
