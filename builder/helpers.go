// SPDX-License-Identifier: MIT

// Package builder provides internal helpers shared by constructors.
package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
)

// addVertices inserts idFn(0..n-1), applies vertex attributes to each and
// returns the IDs in index order.
// Complexity: O(n) time, O(n) space.
func addVertices(g *core.Graph, cfg builderConfig, method string, n int) ([]string, error) {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = cfg.idFn(i)
		if err := addVertex(g, cfg, method, ids[i]); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// addVertex inserts one vertex and draws its configured attributes.
func addVertex(g *core.Graph, cfg builderConfig, method, id string) error {
	if err := g.AddVertex(id); err != nil {
		return fmt.Errorf("%s: AddVertex(%s): %w", method, id, err)
	}
	for _, a := range cfg.vertexAttrs {
		if err := g.SetVertexAttr(id, a.label, a.fn(cfg.rng)); err != nil {
			return fmt.Errorf("%s: SetVertexAttr(%s,%s): %w", method, id, a.label, err)
		}
	}

	return nil
}

// addEdge connects u and v, drawing each configured edge attribute once.
func addEdge(g *core.Graph, cfg builderConfig, method, u, v string) error {
	opts := make([]core.EdgeOption, 0, len(cfg.edgeAttrs))
	for _, a := range cfg.edgeAttrs {
		opts = append(opts, core.WithEdgeAttr(a.label, a.fn(cfg.rng)))
	}
	if _, err := g.AddEdge(u, v, opts...); err != nil {
		return fmt.Errorf("%s: AddEdge(%s—%s): %w", method, u, v, err)
	}

	return nil
}
