// SPDX-License-Identifier: MIT

// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/epinet/core"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAddEdge ensures concurrent AddEdge calls are safe and all neighbors appear.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	var wg sync.WaitGroup
	errs := make(chan error, NConcurrentAdds)
	wg.Add(NConcurrentAdds)
	for i := 0; i < NConcurrentAdds; i++ {
		go func(id int) {
			defer wg.Done()
			if _, err := g.AddEdge(VertexX, fmt.Sprintf("V%d", id)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	deg, err := g.Degree(VertexX)
	require.NoError(t, err)
	require.Equal(t, NConcurrentAdds, deg)
}

// TestConcurrentReaders runs neighbor and attribute queries in parallel with writers.
func TestConcurrentReaders(t *testing.T) {
	g := NewTriangleWithTail(t)
	var wg sync.WaitGroup
	wg.Add(2 * NReaders)
	for i := 0; i < NReaders; i++ {
		go func() {
			defer wg.Done()
			_, _ = g.Neighbors(VertexC)
			_, _ = g.EdgeAttr(VertexA, VertexB, LabelWeight)
			_ = g.EdgePairs()
		}()
		go func(i int) {
			defer wg.Done()
			_ = g.SetEdgeAttr(VertexA, VertexB, LabelWeight, float64(i))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 4, g.Size())
}
