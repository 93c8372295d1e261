// SPDX-License-Identifier: MIT

package ode

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MethodDormandPrince names the DormandPrince integrator.
const MethodDormandPrince = "dopri5"

// Dormand–Prince 5(4) tableau.
const (
	dpC2 = 1.0 / 5
	dpC3 = 3.0 / 10
	dpC4 = 4.0 / 5
	dpC5 = 8.0 / 9

	dpA21 = 1.0 / 5
	dpA31 = 3.0 / 40
	dpA32 = 9.0 / 40
	dpA41 = 44.0 / 45
	dpA42 = -56.0 / 15
	dpA43 = 32.0 / 9
	dpA51 = 19372.0 / 6561
	dpA52 = -25360.0 / 2187
	dpA53 = 64448.0 / 6561
	dpA54 = -212.0 / 729
	dpA61 = 9017.0 / 3168
	dpA62 = -355.0 / 33
	dpA63 = 46732.0 / 5247
	dpA64 = 49.0 / 176
	dpA65 = -5103.0 / 18656
	dpA71 = 35.0 / 384
	dpA73 = 500.0 / 1113
	dpA74 = 125.0 / 192
	dpA75 = -2187.0 / 6784
	dpA76 = 11.0 / 84

	// 5th minus 4th order weights.
	dpE1 = 71.0 / 57600
	dpE3 = -71.0 / 16695
	dpE4 = 71.0 / 1920
	dpE5 = -17253.0 / 339200
	dpE6 = 22.0 / 525
	dpE7 = -1.0 / 40
)

// Step-size controller bounds.
const (
	safety    = 0.9
	minFactor = 0.2
	maxFactor = 10.0
)

// DormandPrince is the adaptive explicit Runge–Kutta 5(4) integrator.
// It is safe for concurrent use; each call owns its buffers.
type DormandPrince struct {
	cfg config
}

// NewDormandPrince returns a DormandPrince integrator.
func NewDormandPrince(opts ...Option) *DormandPrince {
	return &DormandPrince{cfg: newConfig(opts...)}
}

// Name implements Integrator.
func (dp *DormandPrince) Name() string { return MethodDormandPrince }

// Integrate implements Integrator.
func (dp *DormandPrince) Integrate(ctx context.Context, f Func, y0, times []float64) (*mat.Dense, Statistics, error) {
	c := &dp.cfg
	var st Statistics
	out, err := prepare(MethodDormandPrince, y0, times)
	if err != nil {
		return nil, st, err
	}

	n := len(y0)
	y := append([]float64(nil), y0...)
	yNew := make([]float64, n)
	tmp := make([]float64, n)
	errv := make([]float64, n)
	scratch := make([]float64, n)
	k := make([][]float64, 7)
	for i := range k {
		k[i] = make([]float64, n)
	}

	t := times[0]
	span := times[len(times)-1] - t
	f(t, y, k[0])
	st.Evaluations++

	var h float64
	if span > 0 {
		var ev int
		h, ev = initialStep(f, t, y, k[0], 5, span, c)
		st.Evaluations += ev
	}

	attempts := 0
	for r := 1; r < len(times); r++ {
		target := times[r]
		for t < target {
			if err := ctx.Err(); err != nil {
				return dp.fail(st, t, err)
			}
			if attempts >= c.maxSteps {
				return dp.fail(st, t, ErrMaxSteps)
			}
			attempts++

			hh := h
			clipped := false
			if t+hh >= target {
				hh = target - t
				clipped = true
			}

			dp.stages(f, t, hh, y, k, tmp, yNew)
			st.Evaluations += 6

			for i := 0; i < n; i++ {
				errv[i] = hh * (dpE1*k[0][i] + dpE3*k[2][i] + dpE4*k[3][i] + dpE5*k[4][i] + dpE6*k[5][i] + dpE7*k[6][i])
			}
			en := errNorm(errv, y, yNew, scratch, c.rtol, c.atol)

			if en <= 1 {
				if clipped {
					t = target
				} else {
					t += hh
				}
				y, yNew = yNew, y
				k[0], k[6] = k[6], k[0]
				st.Steps++
				st.LastStep = hh
				c.accepted(MethodDormandPrince, hh)
				if !finite(y) {
					return dp.fail(st, t, ErrNonFinite)
				}

				next := hh * factor(en)
				if !(clipped && next < h) {
					h = next
				}
				continue
			}

			if math.IsNaN(en) {
				return dp.fail(st, t, ErrNonFinite)
			}
			st.Rejected++
			c.rejected(MethodDormandPrince, t, hh, en)
			h = hh * math.Max(minFactor, safety*math.Pow(en, -0.2))
			if h < c.minStep(t) {
				return dp.fail(st, t, ErrStepTooSmall)
			}
		}
		out.SetRow(r, y)
	}
	c.finished(MethodDormandPrince, st, nil)

	return out, st, nil
}

// stages evaluates k2..k7 at step h and writes the 5th-order solution to yNew.
// k[0] must hold f(t, y) on entry; k[6] holds f(t+h, yNew) on exit.
func (dp *DormandPrince) stages(f Func, t, h float64, y []float64, k [][]float64, tmp, yNew []float64) {
	n := len(y)
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*dpA21*k[0][i]
	}
	f(t+dpC2*h, tmp, k[1])
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*(dpA31*k[0][i]+dpA32*k[1][i])
	}
	f(t+dpC3*h, tmp, k[2])
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*(dpA41*k[0][i]+dpA42*k[1][i]+dpA43*k[2][i])
	}
	f(t+dpC4*h, tmp, k[3])
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*(dpA51*k[0][i]+dpA52*k[1][i]+dpA53*k[2][i]+dpA54*k[3][i])
	}
	f(t+dpC5*h, tmp, k[4])
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*(dpA61*k[0][i]+dpA62*k[1][i]+dpA63*k[2][i]+dpA64*k[3][i]+dpA65*k[4][i])
	}
	f(t+h, tmp, k[5])
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(dpA71*k[0][i]+dpA73*k[2][i]+dpA74*k[3][i]+dpA75*k[4][i]+dpA76*k[5][i])
	}
	f(t+h, yNew, k[6])
}

func (dp *DormandPrince) fail(st Statistics, t float64, err error) (*mat.Dense, Statistics, error) {
	ie := &IntegrationError{Method: MethodDormandPrince, Time: t, Step: st.Steps, Err: err}
	dp.cfg.finished(MethodDormandPrince, st, ie)

	return nil, st, ie
}

// factor is the growth factor for an accepted step with error norm en.
func factor(en float64) float64 {
	if en == 0 {
		return maxFactor
	}
	return math.Min(maxFactor, math.Max(minFactor, safety*math.Pow(en, -0.2)))
}
