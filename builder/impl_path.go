// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// impl_path.go: implementation of Path(n): the chain P_n.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices).
//   • Edges emitted in order i→i+1.

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// Path returns a Constructor that builds a simple path on n vertices.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodPath, n, MinPathNodes, ErrTooFewVertices)
		}
		ids, err := addVertices(g, cfg, MethodPath, n)
		if err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err = addEdge(g, cfg, MethodPath, ids[i], ids[i+1]); err != nil {
				return err
			}
		}

		return nil
	}
}
