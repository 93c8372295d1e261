// SPDX-License-Identifier: MIT

// File: methods_adjacent.go
// Role: Neighborhood queries and adjacency helpers.
// Determinism:
//   - Neighbors() returns unique IDs sorted lex asc.
// Concurrency:
//   - Read operations hold muVert then muEdgeAdj read locks.
//   - ensureAdjacency is called only under the muEdgeAdj write lock.

package core

import "sort"

// Neighbors returns the IDs adjacent to id, sorted ascending.
// A vertex with a self-loop lists itself once.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist.
//
// Complexity:
//   - Time O(d log d), Space O(d).
func (g *Graph) Neighbors(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	out := make([]string, 0, len(g.adjacency[id]))
	for nb := range g.adjacency[id] {
		out = append(out, nb)
	}
	sort.Strings(out)

	return out, nil
}

// AdjacencyList returns a fresh map vertex → sorted neighbor IDs.
// Complexity: O(V + E log E).
func (g *Graph) AdjacencyList() map[string][]string {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make(map[string][]string, len(g.adjacency))
	for u, nbrs := range g.adjacency {
		list := make([]string, 0, len(nbrs))
		for v := range nbrs {
			list = append(list, v)
		}
		sort.Strings(list)
		out[u] = list
	}

	return out
}

// ensureAdjacency allocates the adjacency bucket of u if missing.
func ensureAdjacency(g *Graph, u string) {
	if g.adjacency[u] == nil {
		g.adjacency[u] = make(map[string]string)
	}
}
