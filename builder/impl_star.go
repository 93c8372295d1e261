// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// impl_star.go: implementation of Star(n): hub "Center" plus n-1 leaves.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices).
//   • Leaves use cfg.idFn(0..n-2); the hub ID is CenterVertexID.

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// Star returns a Constructor that builds a star with n vertices in total.
// Its degree distribution (one hub of degree n-1, n-1 leaves of degree 1)
// is the classic stress case for heterogeneous closures.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodStar, n, MinStarNodes, ErrTooFewVertices)
		}
		if err := addVertex(g, cfg, MethodStar, CenterVertexID); err != nil {
			return err
		}
		leaves, err := addVertices(g, cfg, MethodStar, n-1)
		if err != nil {
			return err
		}
		for _, leaf := range leaves {
			if err = addEdge(g, cfg, MethodStar, CenterVertexID, leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
