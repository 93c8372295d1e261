// SPDX-License-Identifier: MIT

package epidemic_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func uniform(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// On K_N with a symmetric start the individual-based SIS system collapses
// to the homogeneous meanfield with n = N-1.
func TestSISIndividualBased_CompleteGraphMatchesMeanfield(t *testing.T) {
	const N = 6
	g := build(t, builder.Complete(N))
	ctx := context.Background()
	opts := []epidemic.Option{epidemic.WithTimes(0, 10, 11)}

	ib, err := epidemic.SISIndividualBased(ctx, g, uniform(N, 0.1), 0.4, 1, opts...)
	require.NoError(t, err)
	mf, err := epidemic.SISHomogeneousMeanfield(ctx, N*0.9, N*0.1, N-1, 0.4, 1, opts...)
	require.NoError(t, err)
	for r := range ib.Times {
		assert.InDelta(t, mf.I[r], ib.I[r], 1e-5)
		assert.InDelta(t, N, ib.S[r]+ib.I[r], 1e-9)
	}
}

func TestSIRIndividualBased_WeightsScaleRates(t *testing.T) {
	g := build(t, builder.Cycle(7),
		builder.WithEdgeAttr("w", builder.ConstantWeightFn(2)),
		builder.WithVertexAttr("r", builder.ConstantWeightFn(0.5)))
	ctx := context.Background()
	x0, y0 := uniform(7, 0.8), uniform(7, 0.2)

	weighted, err := epidemic.SIRIndividualBased(ctx, g, x0, y0, 0.5, 2,
		epidemic.WithTimes(0, 4, 9),
		epidemic.WithTransmissionWeight("w"),
		epidemic.WithRecoveryWeight("r"))
	require.NoError(t, err)
	plain, err := epidemic.SIRIndividualBased(ctx, g, x0, y0, 1, 1, epidemic.WithTimes(0, 4, 9))
	require.NoError(t, err)
	for r := range plain.Times {
		assert.InDelta(t, plain.S[r], weighted.S[r], 1e-9)
		assert.InDelta(t, plain.R[r], weighted.R[r], 1e-9)
	}

	_, err = epidemic.SIRIndividualBased(ctx, g, x0, y0, 1, 1, epidemic.WithTransmissionWeight("missing"))
	require.ErrorIs(t, err, rates.ErrMissingWeight)
	require.ErrorIs(t, err, epidemic.ErrConfiguration)
}

func TestIndividualBasedPureIC(t *testing.T) {
	g := build(t, builder.Star(5))
	ctx := context.Background()

	res, err := epidemic.SIRIndividualBasedPureIC(ctx, g, []string{"Center"}, nil, 1, 1,
		epidemic.WithTimes(0, 3, 4), epidemic.WithFullData())
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.I[0])
	assert.Equal(t, 4.0, res.S[0])
	assert.Equal(t, 0.0, res.R[0])
	assert.Equal(t, g.Vertices(), res.Nodes)
	assert.Contains(t, res.Detail, "Z")

	res, err = epidemic.SIRIndividualBasedPureIC(ctx, g, []string{"Center"}, []string{"0", "1"}, 1, 1,
		epidemic.WithTimes(0, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.S[0])
	assert.Equal(t, 2.0, res.R[0])

	_, err = epidemic.SISIndividualBasedPureIC(ctx, g, []string{"nobody"}, 1, 1)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	require.ErrorIs(t, err, epidemic.ErrConfiguration)
}

func TestNodeModels_Validation(t *testing.T) {
	g := build(t, builder.Path(4))
	ctx := context.Background()

	_, err := epidemic.SISIndividualBased(ctx, g, uniform(3, 0.1), 1, 1)
	require.ErrorIs(t, err, epidemic.ErrLengthMismatch)

	_, err = epidemic.SISPairBased(ctx, g, uniform(4, 0.1), 1, 1,
		epidemic.WithPairs(mat.NewDense(3, 3, nil), nil))
	require.ErrorIs(t, err, epidemic.ErrLengthMismatch)

	_, err = epidemic.SIRPairBased(ctx, g, uniform(4, 0.1), 1, 1,
		epidemic.WithNodeList([]string{"0", "1", "2", "2"}))
	require.ErrorIs(t, err, epidemic.ErrLengthMismatch)

	_, err = epidemic.SISPairBased(ctx, core.NewGraph(), nil, 1, 1)
	require.ErrorIs(t, err, epidemic.ErrConfiguration)
}

func TestSISPairBased_ConservesAndRespectsEdges(t *testing.T) {
	g := build(t, builder.Path(4))
	res, err := epidemic.SISPairBased(context.Background(), g, []float64{0.5, 0, 0, 0}, 1, 0.5,
		epidemic.WithTimes(0, 5, 11), epidemic.WithFullData())
	require.NoError(t, err)
	last := len(res.Times) - 1
	for r := range res.Times {
		assert.InDelta(t, 4, res.S[r]+res.I[r], 1e-9)
	}
	assert.Greater(t, res.I[last], 0.0)

	xy := res.Detail["XY"].Matrix(last)
	assert.Equal(t, 0.0, xy.At(0, 2), "non-adjacent pair stays empty")
	assert.Equal(t, 0.0, xy.At(3, 0))
}

// The node-pair and edge-list forms of the pair-based SIR closure share
// equations and must agree.
func TestSIRPairBased_EdgeFormAgrees(t *testing.T) {
	g := build(t, builder.RandomRegular(10, 3), builder.WithSeed(3))
	ctx := context.Background()
	opts := []epidemic.Option{epidemic.WithTimes(0, 6, 13), epidemic.WithFullData()}

	nodeForm, err := epidemic.SIRPairBased(ctx, g, uniform(10, 0.1), 0.8, 1, opts...)
	require.NoError(t, err)
	edgeForm, err := epidemic.SIRPairBased2(ctx, g, 0.8, 1, append(opts, epidemic.WithRho(0.1))...)
	require.NoError(t, err)

	for r := range nodeForm.Times {
		assert.InDelta(t, nodeForm.S[r], edgeForm.S[r], 1e-6)
		assert.InDelta(t, nodeForm.I[r], edgeForm.I[r], 1e-6)
		assert.InDelta(t, 10, edgeForm.S[r]+edgeForm.I[r]+edgeForm.R[r], 1e-9)
	}
	assert.Len(t, edgeForm.Edges, 15)
	for _, k := range []string{"X", "Y", "Z", "XY", "YX", "XX", "YY"} {
		assert.Contains(t, edgeForm.Detail, k)
	}
}

// Per-edge rates resolved once for the edge-list form must line up with
// the node-pair form when every edge and vertex has its own weight.
func TestSIRPairBased_EdgeFormAgreesWithWeights(t *testing.T) {
	g := build(t, builder.RandomRegular(12, 3), builder.WithSeed(8),
		builder.WithEdgeAttr("w", builder.UniformWeightFn(0.2, 3)),
		builder.WithVertexAttr("r", builder.UniformWeightFn(0.5, 2)))
	ctx := context.Background()
	opts := []epidemic.Option{
		epidemic.WithTimes(0, 5, 11),
		epidemic.WithTransmissionWeight("w"),
		epidemic.WithRecoveryWeight("r"),
	}

	nodeForm, err := epidemic.SIRPairBased(ctx, g, uniform(12, 0.15), 0.7, 1, opts...)
	require.NoError(t, err)
	edgeForm, err := epidemic.SIRPairBased2(ctx, g, 0.7, 1, append(opts, epidemic.WithRho(0.15))...)
	require.NoError(t, err)

	for r := range nodeForm.Times {
		assert.InDelta(t, nodeForm.S[r], edgeForm.S[r], 1e-6)
		assert.InDelta(t, nodeForm.I[r], edgeForm.I[r], 1e-6)
		assert.InDelta(t, nodeForm.R[r], edgeForm.R[r], 1e-6)
	}
}

func TestSIRPairBased2_Validation(t *testing.T) {
	g := build(t, builder.Path(3))
	ctx := context.Background()
	nodes := []string{"0", "1", "2"}
	edges := [][2]string{{"0", "1"}, {"1", "2"}}
	y0 := []float64{0.5, 0, 0}

	tests := []struct {
		name string
		opts []epidemic.Option
		want error
	}{
		{"rho and Y0", []epidemic.Option{epidemic.WithRho(0.1), epidemic.WithInfected(y0), epidemic.WithNodeList(nodes)}, epidemic.ErrExclusiveParams},
		{"neither", nil, epidemic.ErrMissingIC},
		{"Y0 without node list", []epidemic.Option{epidemic.WithInfected(y0)}, epidemic.ErrMissingIC},
		{"partial edge IC", []epidemic.Option{epidemic.WithRho(0.1), epidemic.WithEdgeList(edges),
			epidemic.WithEdgeIC([]float64{0, 0}, nil, nil)}, epidemic.ErrMissingIC},
		{"edge IC without edge list", []epidemic.Option{epidemic.WithRho(0.1),
			epidemic.WithEdgeIC([]float64{0, 0}, []float64{0, 0}, []float64{0, 0})}, epidemic.ErrMissingIC},
		{"foreign edge", []epidemic.Option{epidemic.WithRho(0.1), epidemic.WithEdgeList([][2]string{{"0", "1"}, {"0", "2"}})}, core.ErrEdgeNotFound},
		{"inconsistent edge IC", []epidemic.Option{epidemic.WithInfected(y0), epidemic.WithNodeList(nodes), epidemic.WithEdgeList(edges),
			epidemic.WithEdgeIC([]float64{0, 0}, []float64{0.9, 0}, []float64{0, 0})}, epidemic.ErrInconsistentIC},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := epidemic.SIRPairBased2(ctx, g, 1, 1, tc.opts...)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, epidemic.ErrConfiguration)
		})
	}

	res, err := epidemic.SIRPairBased2(ctx, g, 1, 1,
		epidemic.WithInfected(y0), epidemic.WithNodeList(nodes), epidemic.WithEdgeList(edges),
		epidemic.WithEdgeIC([]float64{0, 0}, []float64{0.5, 0}, []float64{0, 1}),
		epidemic.WithTimes(0, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, edges, res.Edges)
	assert.InDelta(t, 0.5, res.I[0], 1e-12)
}
