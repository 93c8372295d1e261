// SPDX-License-Identifier: MIT

// Package layout_test verifies pack/unpack round trips and series splitting.
package layout_test

import (
	"testing"

	"github.com/katalvlaran/epinet/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sirPairLayout(t *testing.T, n int) *layout.Layout {
	t.Helper()
	l, err := layout.New(
		layout.Vector("X", n),
		layout.Vector("Y", n),
		layout.Matrix("XY", n, n),
		layout.Matrix("XX", n, n),
	)
	require.NoError(t, err)

	return l
}

func TestLayout_PackUnpack(t *testing.T) {
	l := sirPairLayout(t, 2)
	assert.Equal(t, 12, l.Size())

	x := []float64{1, 2}
	y := []float64{3, 4}
	xy := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	xx := []float64{9, 10, 11, 12}

	flat, err := l.Pack(x, y, layout.Flatten(xy), xx)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, flat)

	// Pack copies; later edits to inputs do not leak into the state.
	x[0] = 100
	assert.Equal(t, 1.0, flat[0])

	parts, err := l.Unpack(flat)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7, 8}, parts["XY"])
	parts["XY"][0] = -1
	assert.Equal(t, 5.0, flat[4])

	lo, hi, err := l.Span("XX")
	require.NoError(t, err)
	assert.Equal(t, 8, lo)
	assert.Equal(t, 12, hi)
	assert.Equal(t, []float64{9, 10, 11, 12}, l.View(flat, "XX"))
}

func TestLayout_Errors(t *testing.T) {
	_, err := layout.New(layout.Scalar("S"), layout.Scalar("S"))
	require.ErrorIs(t, err, layout.ErrDuplicateSection)

	_, err = layout.New(layout.Vector("", 2))
	require.ErrorIs(t, err, layout.ErrBadSection)

	_, err = layout.New(layout.Vector("k", -1))
	require.ErrorIs(t, err, layout.ErrBadSection)

	l := sirPairLayout(t, 1)
	_, err = l.Pack([]float64{1})
	require.ErrorIs(t, err, layout.ErrShape)
	_, err = l.Pack([]float64{1}, []float64{1}, []float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, layout.ErrShape)
	_, err = l.Unpack([]float64{1})
	require.ErrorIs(t, err, layout.ErrShape)
	_, err = l.Section("nope")
	require.ErrorIs(t, err, layout.ErrUnknownSection)
	_, _, err = l.Span("nope")
	require.ErrorIs(t, err, layout.ErrUnknownSection)
}

func TestLayout_Split(t *testing.T) {
	l, err := layout.New(layout.Scalar("S"), layout.Matrix("M", 2, 2))
	require.NoError(t, err)

	traj := mat.NewDense(2, 5, []float64{
		1, 1, 2, 3, 4,
		0.5, 5, 6, 7, 8,
	})
	series, err := l.Split(traj)
	require.NoError(t, err)

	s := series["S"]
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1, 0.5}, s.Scalar())

	m := series["M"]
	assert.Equal(t, []float64{5, 6, 7, 8}, m.At(1))
	assert.Equal(t, 7.0, m.Matrix(1).At(1, 0))
	assert.Equal(t, []float64{10, 26}, m.Totals())
	assert.Equal(t, []float64{2, 6}, m.Entry(1))

	traj.Set(0, 0, 99)
	assert.Equal(t, 1.0, s.Scalar()[0])

	_, err = l.Split(mat.NewDense(1, 3, nil))
	require.ErrorIs(t, err, layout.ErrShape)
}
