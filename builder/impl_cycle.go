// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// impl_cycle.go: implementation of Cycle(n): the 2-regular ring C_n.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Edges emitted in order i→(i+1) mod n for i = 0..n-1.

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// Cycle returns a Constructor that builds the ring C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodCycle, n, MinCycleNodes, ErrTooFewVertices)
		}
		ids, err := addVertices(g, cfg, MethodCycle, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err = addEdge(g, cfg, MethodCycle, ids[i], ids[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}
