// SPDX-License-Identifier: MIT

// Package degree_test verifies index, tabulation and generating-function contracts.
package degree_test

import (
	"testing"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func star(t *testing.T, n int) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, builder.Star(n))
	require.NoError(t, err)

	return g
}

func TestIndex_DenseAndObserved(t *testing.T) {
	d := degree.Dense(3)
	assert.True(t, d.IsDense())
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 3, d.Max())
	p, err := d.Position(2)
	require.NoError(t, err)
	assert.Equal(t, 2, p)

	o := degree.Observed([]int{5, 1, 5, 3})
	assert.False(t, o.IsDense())
	assert.Equal(t, []int{1, 3, 5}, o.Degrees())
	assert.Equal(t, []float64{1, 3, 5}, o.Floats())
	p, err = o.Position(5)
	require.NoError(t, err)
	assert.Equal(t, 2, p)
	assert.Equal(t, 5, o.Degree(p))

	_, err = o.Position(2)
	require.ErrorIs(t, err, degree.ErrUnobservedDegree)
	require.ErrorIs(t, err, degree.ErrConfiguration)

	assert.Equal(t, -1, degree.Dense(-3).Max())
}

func TestTabulate_Star(t *testing.T) {
	tab, err := degree.Tabulate(star(t, 5), 0.2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 4, 0, 0, 1}, tab.Nk)
	assert.InDeltaSlice(t, []float64{0, 3.2, 0, 0, 0.8}, tab.Sk0, eps)
	assert.InDeltaSlice(t, []float64{0, 0.8, 0, 0, 0.2}, tab.Ik0, eps)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, tab.Rk0)
}

func TestTabulate_Errors(t *testing.T) {
	_, err := degree.Tabulate(core.NewGraph(), 0.1)
	require.ErrorIs(t, err, degree.ErrEmptyNetwork)

	_, err = degree.Tabulate(star(t, 3), 1.5)
	require.ErrorIs(t, err, degree.ErrBadFraction)
	require.ErrorIs(t, err, degree.ErrConfiguration)
}

func TestTabulatePairs_ObservedAndDense(t *testing.T) {
	g := star(t, 5)

	pt, err := degree.TabulatePairs(g, 0.5, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, pt.Index.Degrees())
	assert.Equal(t, 4.0, pt.NkNl.At(0, 1))
	assert.Equal(t, 4.0, pt.NkNl.At(1, 0))
	assert.Equal(t, 0.0, pt.NkNl.At(0, 0))
	assert.InDelta(t, 1.0, pt.SkSl0.At(0, 1), eps)
	assert.InDelta(t, 1.0, pt.SkIl0.At(1, 0), eps)
	assert.InDelta(t, 1.0, pt.IkIl0.At(0, 1), eps)

	nk, err := pt.Counts(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1}, nk)

	dense, err := degree.TabulatePairs(g, 0, false)
	require.NoError(t, err)
	r, c := dense.NkNl.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, 4.0, dense.NkNl.At(1, 4))
	assert.Equal(t, 0.0, dense.SkIl0.At(1, 4))
}

func TestTabulatePairs_SumIsTwiceEdges(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomSparse(60, 0.1))
	require.NoError(t, err)

	pt, err := degree.TabulatePairs(g, 0.1, true)
	require.NoError(t, err)

	var total float64
	n := pt.Index.Len()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += pt.NkNl.At(i, j)
			assert.Equal(t, pt.NkNl.At(i, j), pt.NkNl.At(j, i))
		}
	}
	assert.Equal(t, float64(2*g.Size()), total)
}

func TestDistribution_Moments(t *testing.T) {
	pk, err := degree.DistributionOf(star(t, 5))
	require.NoError(t, err)

	assert.InDelta(t, 0.8, pk[1], eps)
	assert.InDelta(t, 0.2, pk[4], eps)
	assert.InDelta(t, 1.0, pk.Total(), eps)

	m := pk.Moments()
	assert.InDelta(t, 1.6, m.Mean, eps)
	assert.InDelta(t, 4.0, m.Second, eps)
	assert.InDelta(t, 13.6, m.Third, eps)
	assert.InDeltaSlice(t, []float64{0, 0.8, 0, 0, 0.2}, pk.Dense(), eps)
}

func TestGeneratingFunction(t *testing.T) {
	f := degree.NewGeneratingFunction(map[int]float64{0: 0.25, 1: 0.5, 3: 0.25})

	assert.InDelta(t, 1.0, f.Psi(1), eps)
	assert.InDelta(t, 0.25, f.Psi(0), eps)
	assert.InDelta(t, 0.5+0.75, f.Prime(1), eps)
	assert.InDelta(t, 0.5, f.Prime(0), eps)
	assert.InDelta(t, 1.5, f.PrimePrime(1), eps)
	assert.InDelta(t, 0.0, f.PrimePrime(0), eps)

	x := 0.5
	assert.InDelta(t, 2*f.Psi(x), f.Scale(2).Psi(x), eps)
}

func TestCheckLengths(t *testing.T) {
	require.NoError(t, degree.CheckLengths("m", []float64{1}, []float64{2}))
	err := degree.CheckLengths("m", []float64{1}, []float64{2, 3})
	require.ErrorIs(t, err, degree.ErrDegreeMismatch)
}
