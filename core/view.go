// SPDX-License-Identifier: MIT

// File: view.go
// Role: Read-only surface of a contact network consumed by model code.
// Determinism:
//   - Implementations must return Vertices() and Neighbors() in a stable order.
// Concurrency:
//   - Implementations must be safe for concurrent reads.

package core

// Network is the read-only view of a contact network required by the
// degree, rates and epidemic packages. *Graph implements it.
type Network interface {
	// Vertices returns every vertex ID in a stable order.
	Vertices() []string
	// Neighbors returns the IDs adjacent to id in a stable order.
	Neighbors(id string) ([]string, error)
	// Degree returns the number of edge endpoints at id.
	Degree(id string) (int, error)
	// EdgePairs returns each undirected edge once.
	EdgePairs() [][2]string
	// Order returns the number of vertices.
	Order() int
	// Size returns the number of edges.
	Size() int
	// EdgeAttr returns a labelled edge attribute.
	EdgeAttr(u, v, label string) (float64, error)
	// VertexAttr returns a labelled vertex attribute.
	VertexAttr(id, label string) (float64, error)
}

var _ Network = (*Graph)(nil)
