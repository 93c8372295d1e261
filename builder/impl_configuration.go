// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// impl_configuration.go: implementation of ConfigurationModel(degrees).
//
// Canonical model (erased configuration model):
//   • Vertex i receives degrees[i] stubs; stubs are shuffled and paired.
//   • Self-loops and repeated pairs are dropped, so realised degrees may fall
//     slightly below the requested ones. This is the standard simplification
//     and keeps the degree distribution close for large n.
//
// Contract:
//   • len(degrees) ≥ 1, every entry ≥ 0, sum even (else ErrBadDegreeSequence).
//   • cfg.rng must be non-nil (else ErrNeedRandSource).

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// ConfigurationModel returns a Constructor that realises the degree
// sequence as an erased configuration-model network, the random ensemble
// assumed by the heterogeneous and edge-based closures.
func ConfigurationModel(degrees []int) Constructor {
	seq := append([]int(nil), degrees...)
	return func(g *core.Graph, cfg builderConfig) error {
		if len(seq) < MinRandomNodes {
			return fmt.Errorf("%s: empty degree sequence: %w", MethodConfigurationModel, ErrBadDegreeSequence)
		}
		total := 0
		for i, k := range seq {
			if k < 0 {
				return fmt.Errorf("%s: degrees[%d]=%d < 0: %w", MethodConfigurationModel, i, k, ErrBadDegreeSequence)
			}
			total += k
		}
		if total%2 != 0 {
			return fmt.Errorf("%s: degree sum %d is odd: %w", MethodConfigurationModel, total, ErrBadDegreeSequence)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", MethodConfigurationModel, ErrNeedRandSource)
		}

		ids, err := addVertices(g, cfg, MethodConfigurationModel, len(seq))
		if err != nil {
			return err
		}
		stubs := make([]int, 0, total)
		for i, k := range seq {
			for s := 0; s < k; s++ {
				stubs = append(stubs, i)
			}
		}
		cfg.rng.Shuffle(len(stubs), func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })

		for i := 0; i+1 < len(stubs); i += 2 {
			u, v := ids[stubs[i]], ids[stubs[i+1]]
			if u == v || g.HasEdge(u, v) {
				continue
			}
			if err = addEdge(g, cfg, MethodConfigurationModel, u, v); err != nil {
				return err
			}
		}

		return nil
	}
}
