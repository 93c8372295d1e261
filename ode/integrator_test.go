// SPDX-License-Identifier: MIT

// Package ode_test verifies accuracy, report-time fidelity and failure modes
// of both integrators.
package ode_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/epinet/ode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrators(opts ...ode.Option) []ode.Integrator {
	return []ode.Integrator{ode.NewDormandPrince(opts...), ode.NewAdams(opts...)}
}

func decay(_ float64, y, dy []float64) {
	for i := range y {
		dy[i] = -y[i]
	}
}

func oscillator(_ float64, y, dy []float64) {
	dy[0] = y[1]
	dy[1] = -y[0]
}

func TestIntegrate_ExponentialDecay(t *testing.T) {
	times := ode.LinSpace(0, 5, 11)
	for _, ig := range integrators() {
		t.Run(ig.Name(), func(t *testing.T) {
			traj, st, err := ig.Integrate(context.Background(), decay, []float64{1, 2}, times)
			require.NoError(t, err)
			r, c := traj.Dims()
			assert.Equal(t, 11, r)
			assert.Equal(t, 2, c)
			assert.Equal(t, 1.0, traj.At(0, 0))
			assert.Equal(t, 2.0, traj.At(0, 1))
			for i, tt := range times {
				assert.InDelta(t, math.Exp(-tt), traj.At(i, 0), 1e-6)
				assert.InDelta(t, 2*math.Exp(-tt), traj.At(i, 1), 2e-6)
			}
			assert.Positive(t, st.Steps)
			assert.Positive(t, st.Evaluations)
		})
	}
}

func TestIntegrate_Oscillator(t *testing.T) {
	times := ode.LinSpace(0, 2*math.Pi, 5)
	for _, ig := range integrators(ode.WithTolerances(1e-10, 1e-12)) {
		t.Run(ig.Name(), func(t *testing.T) {
			traj, _, err := ig.Integrate(context.Background(), oscillator, []float64{1, 0}, times)
			require.NoError(t, err)
			for i, tt := range times {
				assert.InDelta(t, math.Cos(tt), traj.At(i, 0), 1e-6)
				assert.InDelta(t, -math.Sin(tt), traj.At(i, 1), 1e-6)
			}
		})
	}
}

func TestIntegrate_RepeatedAndSingleTimes(t *testing.T) {
	for _, ig := range integrators() {
		t.Run(ig.Name(), func(t *testing.T) {
			traj, _, err := ig.Integrate(context.Background(), decay, []float64{3}, []float64{1, 1, 2, 2})
			require.NoError(t, err)
			assert.Equal(t, 3.0, traj.At(0, 0))
			assert.Equal(t, 3.0, traj.At(1, 0))
			assert.InDelta(t, 3*math.Exp(-1), traj.At(2, 0), 1e-6)
			assert.Equal(t, traj.At(2, 0), traj.At(3, 0))

			traj, st, err := ig.Integrate(context.Background(), decay, []float64{3}, []float64{7})
			require.NoError(t, err)
			r, _ := traj.Dims()
			assert.Equal(t, 1, r)
			assert.Zero(t, st.Steps)
		})
	}
}

func TestIntegrate_DoesNotAliasInitialState(t *testing.T) {
	y0 := []float64{1}
	for _, ig := range integrators() {
		_, _, err := ig.Integrate(context.Background(), decay, y0, []float64{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 1.0, y0[0])
	}
}

func TestIntegrate_InputErrors(t *testing.T) {
	ctx := context.Background()
	for _, ig := range integrators() {
		t.Run(ig.Name(), func(t *testing.T) {
			_, _, err := ig.Integrate(ctx, decay, []float64{1}, nil)
			require.ErrorIs(t, err, ode.ErrNoTimes)

			_, _, err = ig.Integrate(ctx, decay, nil, []float64{0, 1})
			require.ErrorIs(t, err, ode.ErrEmptyState)

			_, _, err = ig.Integrate(ctx, decay, []float64{1}, []float64{0, 2, 1})
			require.ErrorIs(t, err, ode.ErrTimesNotMonotone)

			_, _, err = ig.Integrate(ctx, decay, []float64{math.NaN()}, []float64{0, 1})
			require.ErrorIs(t, err, ode.ErrNonFinite)
		})
	}
}

func TestIntegrate_Failures(t *testing.T) {
	blowUp := func(_ float64, y, dy []float64) { dy[0] = math.NaN() }

	for _, ig := range integrators() {
		t.Run(ig.Name()+"/nonfinite", func(t *testing.T) {
			_, _, err := ig.Integrate(context.Background(), blowUp, []float64{1}, []float64{0, 1})
			require.ErrorIs(t, err, ode.ErrNonFinite)
			var ie *ode.IntegrationError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, ig.Name(), ie.Method)
		})
	}

	for _, ig := range integrators(ode.WithMaxSteps(3), ode.WithInitialStep(1e-3)) {
		t.Run(ig.Name()+"/maxsteps", func(t *testing.T) {
			_, _, err := ig.Integrate(context.Background(), decay, []float64{1}, []float64{0, 100})
			require.ErrorIs(t, err, ode.ErrMaxSteps)
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, ig := range integrators() {
		t.Run(ig.Name()+"/cancelled", func(t *testing.T) {
			_, _, err := ig.Integrate(ctx, decay, []float64{1}, []float64{0, 1})
			require.ErrorIs(t, err, context.Canceled)
		})
	}
}

// An oversized first step must be caught while the multistep history is
// still being built, not accepted on trust.
func TestAdams_StartupStepIsChecked(t *testing.T) {
	fast := func(_ float64, y, dy []float64) { dy[0] = -10 * y[0] }
	ig := ode.NewAdams(ode.WithInitialStep(1))

	traj, st, err := ig.Integrate(context.Background(), fast, []float64{1}, []float64{0, 1})
	require.NoError(t, err)
	assert.Positive(t, st.Rejected)
	assert.InDelta(t, math.Exp(-10), traj.At(1, 0), 1e-6)
}

type countingObserver struct {
	mu       sync.Mutex
	accepted int
	rejected int
	finished int
	last     ode.Statistics
}

func (o *countingObserver) StepAccepted(string, float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.accepted++
}

func (o *countingObserver) StepRejected(string, float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected++
}

func (o *countingObserver) Finished(_ string, st ode.Statistics, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished++
	o.last = st
}

func TestIntegrate_Observer(t *testing.T) {
	for _, mk := range []func(...ode.Option) ode.Integrator{
		func(o ...ode.Option) ode.Integrator { return ode.NewDormandPrince(o...) },
		func(o ...ode.Option) ode.Integrator { return ode.NewAdams(o...) },
	} {
		obs := &countingObserver{}
		ig := mk(ode.WithObserver(obs), ode.WithInitialStep(1))
		_, st, err := ig.Integrate(context.Background(), decay, []float64{1}, ode.LinSpace(0, 10, 3))
		require.NoError(t, err)
		assert.Equal(t, st.Steps, obs.accepted)
		assert.Equal(t, st.Rejected, obs.rejected)
		assert.Equal(t, 1, obs.finished)
		assert.Equal(t, st, obs.last)
	}
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { ode.WithTolerances(0, 1) })
	assert.Panics(t, func() { ode.WithMaxSteps(0) })
	assert.Panics(t, func() { ode.WithInitialStep(-1) })
	assert.Panics(t, func() { ode.WithMinStep(-1) })
	assert.Panics(t, func() { ode.WithObserver(nil) })
}

func TestLinSpace(t *testing.T) {
	assert.Nil(t, ode.LinSpace(0, 1, 0))
	assert.Equal(t, []float64{2}, ode.LinSpace(2, 5, 1))
	ts := ode.LinSpace(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, ts)
}
