// SPDX-License-Identifier: MIT

package ode

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MethodAdams names the Adams integrator.
const MethodAdams = "adams"

const (
	// milne scales |corrector - predictor| into a local error estimate.
	milne = 19.0 / 270
	// growThreshold allows doubling when every step was 2⁵ times under tolerance.
	growThreshold = 1.0 / 32
	// spacingTol is the relative change of step that forces a history restart.
	spacingTol = 1e-10
)

// Adams is the fourth-order Adams–Bashforth–Moulton predictor–corrector
// (PECE). Within one report interval the step is uniform; an interval whose
// error estimate exceeds tolerance is retried from its start with half the
// step, and the step doubles after an interval well under tolerance.
// Changing the step discards the multistep history, which is rebuilt with
// classical RK4. Start-up steps are error-checked by step doubling: one
// full step against two half steps, keeping the half-step result.
type Adams struct {
	cfg config
}

// NewAdams returns an Adams integrator.
func NewAdams(opts ...Option) *Adams {
	return &Adams{cfg: newConfig(opts...)}
}

// Name implements Integrator.
func (a *Adams) Name() string { return MethodAdams }

// adamsRun is the per-call working state.
type adamsRun struct {
	f       Func
	n       int
	hist    [4][]float64 // hist[0] = f at the current point, hist[j] j steps back
	count   int          // valid entries in hist
	spacing float64
	yp, fp  []float64
	scratch []float64
	errv    []float64
	tmp     []float64
	rk      [3][]float64
	yFull   []float64
	kMid    []float64
}

func (a *Adams) newRun(f Func, n int) *adamsRun {
	r := &adamsRun{f: f, n: n}
	for i := range r.hist {
		r.hist[i] = make([]float64, n)
	}
	for i := range r.rk {
		r.rk[i] = make([]float64, n)
	}
	r.yp = make([]float64, n)
	r.fp = make([]float64, n)
	r.scratch = make([]float64, n)
	r.errv = make([]float64, n)
	r.tmp = make([]float64, n)
	r.yFull = make([]float64, n)
	r.kMid = make([]float64, n)

	return r
}

// push shifts the history one step back and stores fNew as hist[0].
func (r *adamsRun) push(fNew []float64) {
	dropped := r.hist[3]
	r.hist[3], r.hist[2], r.hist[1] = r.hist[2], r.hist[1], r.hist[0]
	copy(dropped, fNew)
	r.hist[0] = dropped
	if r.count < 4 {
		r.count++
	}
}

// Integrate implements Integrator.
func (a *Adams) Integrate(ctx context.Context, f Func, y0, times []float64) (*mat.Dense, Statistics, error) {
	c := &a.cfg
	var st Statistics
	out, err := prepare(MethodAdams, y0, times)
	if err != nil {
		return nil, st, err
	}

	n := len(y0)
	run := a.newRun(f, n)
	y := append([]float64(nil), y0...)
	yStart := make([]float64, n)
	fStart := make([]float64, n)

	t := times[0]
	span := times[len(times)-1] - t
	f(t, y, run.hist[0])
	run.count = 1
	st.Evaluations++

	var h float64
	if span > 0 {
		var ev int
		h, ev = initialStep(f, t, y, run.hist[0], 4, span, c)
		st.Evaluations += ev
	}

	attempts := 0
	for r := 1; r < len(times); r++ {
		target := times[r]
		delta := target - t
		if delta <= 0 {
			out.SetRow(r, y)
			continue
		}

		tStart := t
		copy(yStart, y)
		copy(fStart, run.hist[0])
		for {
			steps := math.Ceil(delta / h)
			hh := delta / steps
			if run.spacing == 0 || math.Abs(hh-run.spacing) > spacingTol*run.spacing {
				run.count = 1
				run.spacing = hh
			}

			ok, worst, checked, err := a.interval(ctx, run, &st, &attempts, t, target, int(steps), hh, y)
			if err != nil {
				return a.fail(st, t, err)
			}
			if ok {
				t = target
				if checked && worst < growThreshold {
					h = 2 * hh
				} else {
					h = hh
				}
				break
			}

			st.Rejected++
			c.rejected(MethodAdams, t, hh, worst)
			t = tStart
			copy(y, yStart)
			copy(run.hist[0], fStart)
			run.count = 1
			run.spacing = 0
			h = hh / 2
			if h < c.minStep(t) {
				return a.fail(st, t, ErrStepTooSmall)
			}
		}
		out.SetRow(r, y)
	}
	c.finished(MethodAdams, st, nil)

	return out, st, nil
}

// interval advances y in place over steps uniform steps of size hh ending at
// target. It reports ok=false with the offending error norm on rejection.
func (a *Adams) interval(ctx context.Context, run *adamsRun, st *Statistics, attempts *int,
	t, target float64, steps int, hh float64, y []float64) (ok bool, worst float64, checked bool, err error) {
	c := &a.cfg
	for s := 0; s < steps; s++ {
		if err := ctx.Err(); err != nil {
			return false, 0, checked, err
		}
		if *attempts >= c.maxSteps {
			return false, 0, checked, ErrMaxSteps
		}
		*attempts++

		tNext := t + hh
		if s == steps-1 {
			tNext = target
		}

		var en float64
		if run.count < 4 {
			en = a.startup(run, t, hh, y)
			st.Evaluations += 10
		} else {
			en = a.abm(run, t, hh, y)
			st.Evaluations++
		}
		checked = true
		if math.IsNaN(en) {
			return false, 0, checked, ErrNonFinite
		}
		if en > 1 {
			return false, en, checked, nil
		}
		worst = math.Max(worst, en)

		run.f(tNext, y, run.fp)
		st.Evaluations++
		run.push(run.fp)
		t = tNext

		st.Steps++
		st.LastStep = hh
		c.accepted(MethodAdams, hh)
		if !finite(y) {
			return false, 0, checked, ErrNonFinite
		}
	}

	return true, worst, checked, nil
}

// startup advances y by two RK4 half steps, writing the result into y
// unless the step is rejected. The error estimate is the Richardson
// difference against one full step. It returns the scaled error norm.
func (a *Adams) startup(run *adamsRun, t, h float64, y []float64) float64 {
	c := &a.cfg
	copy(run.yFull, y)
	a.rk4(run, run.hist[0], t, h, run.yFull)

	copy(run.yp, y)
	a.rk4(run, run.hist[0], t, h/2, run.yp)
	run.f(t+h/2, run.yp, run.kMid)
	a.rk4(run, run.kMid, t+h/2, h/2, run.yp)

	for i := range y {
		run.errv[i] = (run.yp[i] - run.yFull[i]) / 15
	}
	en := errNorm(run.errv, y, run.yp, run.scratch, c.rtol, c.atol)
	if en <= 1 {
		copy(y, run.yp)
	}

	return en
}

// rk4 advances y by one classical Runge–Kutta step; k1 is f(t, y).
func (a *Adams) rk4(run *adamsRun, k1 []float64, t, h float64, y []float64) {
	k2, k3, k4 := run.rk[0], run.rk[1], run.rk[2]

	floats.AddScaledTo(run.tmp, y, h/2, k1)
	run.f(t+h/2, run.tmp, k2)
	floats.AddScaledTo(run.tmp, y, h/2, k2)
	run.f(t+h/2, run.tmp, k3)
	floats.AddScaledTo(run.tmp, y, h, k3)
	run.f(t+h, run.tmp, k4)

	for i := range y {
		y[i] += h / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
}

// abm performs the predict–evaluate–correct part of one step, writing the
// corrected value into y unless the step is rejected. It returns the scaled
// Milne error norm.
func (a *Adams) abm(run *adamsRun, t, h float64, y []float64) float64 {
	c := &a.cfg
	f0, f1, f2, f3 := run.hist[0], run.hist[1], run.hist[2], run.hist[3]
	for i := range y {
		run.yp[i] = y[i] + h/24*(55*f0[i]-59*f1[i]+37*f2[i]-9*f3[i])
	}
	run.f(t+h, run.yp, run.fp)
	for i := range y {
		run.tmp[i] = y[i] + h/24*(9*run.fp[i]+19*f0[i]-5*f1[i]+f2[i])
		run.errv[i] = milne * (run.tmp[i] - run.yp[i])
	}
	en := errNorm(run.errv, y, run.tmp, run.scratch, c.rtol, c.atol)
	if en <= 1 {
		copy(y, run.tmp)
	}

	return en
}

func (a *Adams) fail(st Statistics, t float64, err error) (*mat.Dense, Statistics, error) {
	ie := &IntegrationError{Method: MethodAdams, Time: t, Step: st.Steps, Err: err}
	a.cfg.finished(MethodAdams, st, ie)

	return nil, st, ie
}
