// SPDX-License-Identifier: MIT

// Package core_test contains test helpers for epinet/core.
//
// Purpose:
//   - Provide small, deterministic fixtures for core.Graph.
//   - Enforce concurrency-safe testing patterns (no *testing.T usage inside goroutines).

package core_test

import (
	"testing"

	"github.com/katalvlaran/epinet/core"
	"github.com/stretchr/testify/require"
)

// Common vertex IDs used across core tests.
const (
	VertexEmpty = ""

	VertexA = "A"
	VertexB = "B"
	VertexC = "C"
	VertexD = "D"
	VertexX = "X"
)

// Common attribute labels used across core tests.
const (
	LabelWeight   = "weight"
	LabelRecovery = "recovery"
)

// Common concurrency sizes used across core tests.
const (
	NConcurrentAdds = 200
	NReaders        = 50
)

// NewTriangleWithTail returns A-B-C-A plus the pendant edge C-D.
//
// Degrees: A=2, B=2, C=3, D=1.
func NewTriangleWithTail(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{VertexA, VertexB}, {VertexB, VertexC}, {VertexC, VertexA}, {VertexC, VertexD}} {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}

	return g
}
