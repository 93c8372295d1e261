// SPDX-License-Identifier: MIT

// Package core provides the contact network used by the epidemic models: a
// thread-safe, undirected, simple graph whose vertices and edges carry named
// float attributes.
//
// Network G = (V,E):
//
//   - Undirected edges stored in a mirrored map: adjacency[u][v] = edgeID
//   - At most one edge per vertex pair (ErrMultiEdgeNotAllowed)
//   - Optional self-loops (WithLoops); a loop adds 2 to the degree
//   - Collision-free atomic Edge.ID generation ("e1", "e2", ...)
//   - Named float attributes on vertices and edges, used as rate weights
//
// Core Methods:
//
//	AddVertex(id string) error                          // O(1)
//	AddEdge(u, v string, opts ...EdgeOption) (string, error) // O(1)
//	Neighbors(id string) ([]string, error)              // O(d·log d), sorted
//	Degree(id string) (int, error)                      // O(1)
//	Vertices() []string                                 // O(V·log V), sorted
//	Edges() []*Edge / EdgePairs() [][2]string           // creation order
//	VertexAttr / SetVertexAttr / EdgeAttr / SetEdgeAttr // O(1)
//	Clone() *Graph                                      // O(V+E)
//
// Model packages depend on the read-only Network interface rather than on
// *Graph, so any adjacency source with stable iteration order can be plugged in.
package core
