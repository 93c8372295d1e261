// SPDX-License-Identifier: MIT

package epidemic_test

import (
	"context"
	"sync"
	"testing"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/ode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// methodRecorder collects the method names an integrator reports.
type methodRecorder struct {
	mu      sync.Mutex
	methods map[string]int
}

func (m *methodRecorder) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.methods == nil {
		m.methods = make(map[string]int)
	}
	m.methods[method]++
}

func (m *methodRecorder) StepAccepted(method string, _ float64) { m.record(method) }
func (m *methodRecorder) StepRejected(method string, _ float64) { m.record(method) }
func (m *methodRecorder) Finished(method string, _ ode.Statistics, _ error) {
	m.record(method)
}

type graphModel func(context.Context, core.Network, float64, float64, ...epidemic.Option) (*epidemic.Result, error)

func TestSolverOptions_KeepDefaultMethod(t *testing.T) {
	g := build(t, builder.RandomSparse(30, 0.2), builder.WithSeed(5))
	cases := []struct {
		name  string
		model graphModel
		want  string
	}{
		{"SISHeterogeneousPairwise", epidemic.SISHeterogeneousPairwiseFromGraph, ode.MethodAdams},
		{"SIRHeterogeneousPairwise", epidemic.SIRHeterogeneousPairwiseFromGraph, ode.MethodAdams},
		{"SIRCompactPairwise", epidemic.SIRCompactPairwiseFromGraph, ode.MethodDormandPrince},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &methodRecorder{}
			_, err := tc.model(context.Background(), g, 0.5, 1,
				epidemic.WithRho(0.1), epidemic.WithTimes(0, 4, 9),
				epidemic.WithSolverOptions(ode.WithObserver(rec), ode.WithTolerances(1e-7, 1e-9)))
			require.NoError(t, err)
			require.Len(t, rec.methods, 1)
			assert.Positive(t, rec.methods[tc.want])
		})
	}
}

// The multistep default and the one-step Dormand–Prince method must
// produce the same heterogeneous pairwise trajectory.
func TestHeterogeneousPairwise_AdamsMatchesDormandPrince(t *testing.T) {
	g := build(t, builder.RandomSparse(30, 0.2), builder.WithSeed(5))
	ctx := context.Background()
	opts := []epidemic.Option{epidemic.WithRho(0.1), epidemic.WithTimes(0, 10, 21)}
	dp := epidemic.WithIntegrator(ode.NewDormandPrince())

	for _, tc := range []struct {
		name  string
		model graphModel
	}{
		{"SIS", epidemic.SISHeterogeneousPairwiseFromGraph},
		{"SIR", epidemic.SIRHeterogeneousPairwiseFromGraph},
	} {
		t.Run(tc.name, func(t *testing.T) {
			adams, err := tc.model(ctx, g, 0.8, 1, opts...)
			require.NoError(t, err)
			oneStep, err := tc.model(ctx, g, 0.8, 1, append(opts, dp)...)
			require.NoError(t, err)

			require.Equal(t, adams.Times, oneStep.Times)
			for r := range adams.Times {
				assert.InDelta(t, oneStep.S[r], adams.S[r], 1e-4)
				assert.InDelta(t, oneStep.I[r], adams.I[r], 1e-4)
				if adams.R != nil {
					assert.InDelta(t, oneStep.R[r], adams.R[r], 1e-4)
				}
			}
		})
	}
}
