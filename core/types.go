// SPDX-License-Identifier: MIT

// Package core defines the contact network consumed by every epidemic model:
// an undirected graph whose vertices and edges carry named float attributes
// (weights used to scale transmission and recovery rates).
//
// All core APIs use separate sync.RWMutex locks internally (muVert for vertices,
// muEdgeAdj for edges and adjacency), so a network can be assembled from several
// goroutines and then shared read-only between model runs.
//
// Errors:
//
//	ErrEmptyVertexID     - vertex ID is the empty string.
//	ErrVertexNotFound    - requested vertex does not exist.
//	ErrEdgeNotFound      - requested edge does not exist.
//	ErrAttrNotFound      - requested attribute label is not set.
//	ErrLoopNotAllowed    - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - second edge between the same endpoints.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core network operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrAttrNotFound indicates a vertex or edge has no attribute under the label.
	ErrAttrNotFound = errors.New("core: attribute not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Vertex represents an individual in the contact network.
//
// Attrs holds numeric per-vertex data such as a recovery-rate multiplier.
// It is copied by Clone.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string

	// Attrs maps an attribute label to its value.
	Attrs map[string]float64
}

// Edge represents an undirected contact between two vertices.
//
// From and To record insertion order only; the contact is symmetric.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From is the first endpoint as given to AddEdge.
	From string

	// To is the second endpoint as given to AddEdge.
	To string

	// Attrs maps an attribute label to its value (e.g. a transmission weight).
	Attrs map[string]float64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loops (edges from a vertex to itself).
// A loop contributes 2 to the degree of its vertex.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithEdgeAttr sets an attribute on the edge being added.
func WithEdgeAttr(label string, value float64) EdgeOption {
	return func(e *Edge) { e.Attrs[label] = value }
}

// Graph is the in-memory contact network.
//
// It is undirected and simple: at most one edge joins two vertices, and
// self-loops are rejected unless WithLoops is given.
// muVert protects vertices; muEdgeAdj protects edges and adjacency.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	allowLoops bool

	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacency[u][v] = edge ID, mirrored for v→u.
	adjacency map[string]map[string]string
}

// NewGraph creates an empty undirected Graph.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }
