// SPDX-License-Identifier: MIT

// Package rates_test verifies homogeneous and weighted rate lookups.
package rates_test

import (
	"testing"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	labelTrans = "w"
	labelRec   = "r"
)

func TestPolicy_Homogeneous(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(3)}, builder.RandomRegular(12, 3))
	require.NoError(t, err)

	p, err := rates.New(g, 2, 1)
	require.NoError(t, err)
	assert.True(t, p.Homogeneous())

	for _, e := range g.EdgePairs() {
		assert.Equal(t, 2.0, p.Transmission(e[0], e[1]))
		assert.Equal(t, 2.0, p.Transmission(e[1], e[0]))
	}
	for _, v := range g.Vertices() {
		assert.Equal(t, 1.0, p.Recovery(v))
	}
}

func TestPolicy_Weighted(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("a", "b", core.WithEdgeAttr(labelTrans, 0.5))
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", core.WithEdgeAttr(labelTrans, 2))
	require.NoError(t, err)
	require.NoError(t, g.SetVertexAttr("a", labelRec, 1))
	require.NoError(t, g.SetVertexAttr("b", labelRec, 3))
	require.NoError(t, g.SetVertexAttr("c", labelRec, 0))

	p, err := rates.New(g, 2, 0.5, rates.WithTransmissionWeight(labelTrans), rates.WithRecoveryWeight(labelRec))
	require.NoError(t, err)
	assert.False(t, p.Homogeneous())

	assert.Equal(t, 1.0, p.Transmission("a", "b"))
	assert.Equal(t, 1.0, p.Transmission("b", "a"))
	assert.Equal(t, 4.0, p.Transmission("c", "b"))
	assert.Equal(t, 0.0, p.Transmission("a", "c"))
	assert.Equal(t, 1.5, p.Recovery("b"))
	assert.Equal(t, 0.0, p.Recovery("c"))
	assert.Equal(t, 2.0, p.Tau())
	assert.Equal(t, 0.5, p.Gamma())
}

func TestPolicy_Errors(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("a", "b")
	require.NoError(t, err)

	_, err = rates.New(g, -1, 1)
	require.ErrorIs(t, err, rates.ErrNegativeRate)

	_, err = rates.New(g, 1, 1, rates.WithTransmissionWeight(labelTrans))
	require.ErrorIs(t, err, rates.ErrMissingWeight)
	require.ErrorIs(t, err, rates.ErrConfiguration)

	_, err = rates.New(g, 1, 1, rates.WithRecoveryWeight(labelRec))
	require.ErrorIs(t, err, rates.ErrMissingWeight)

	require.NoError(t, g.SetEdgeAttr("a", "b", labelTrans, -2))
	_, err = rates.New(g, 1, 1, rates.WithTransmissionWeight(labelTrans))
	require.ErrorIs(t, err, rates.ErrNegativeRate)
}
