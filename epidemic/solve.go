// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/epinet/layout"
	"github.com/katalvlaran/epinet/ode"
)

// system is one ready-to-integrate model instance.
type system struct {
	method    string
	layout    *layout.Layout
	y0        []float64
	rhs       ode.Func
	multistep bool // default to the Adams integrator
}

// solution is an integrated system split into sections.
type solution struct {
	times  []float64
	series map[string]*layout.Series
	stats  ode.Statistics
}

// validate checks the report grid and the scalar rates shared by every model.
func (s *settings) validate(method string, tau, gamma float64) error {
	if s.tcount < 1 || s.tmax < s.tmin || math.IsNaN(s.tmin) || math.IsNaN(s.tmax) {
		return fmt.Errorf("%s: tmin=%g tmax=%g tcount=%d: %w", method, s.tmin, s.tmax, s.tcount, ErrBadTimes)
	}
	if tau < 0 || gamma < 0 {
		return fmt.Errorf("%s: tau=%g gamma=%g: %w", method, tau, gamma, ErrBadParameter)
	}

	return nil
}

func (s *settings) pickIntegrator(multistep bool) ode.Integrator {
	if s.integrator != nil {
		return s.integrator
	}
	opts := append([]ode.Option{ode.WithLogger(s.log)}, s.solverOpts...)
	if multistep {
		return ode.NewAdams(opts...)
	}

	return ode.NewDormandPrince(opts...)
}

// solve integrates sys over the report grid. Integrator errors are
// returned unchanged.
func (s *settings) solve(ctx context.Context, sys system) (*solution, error) {
	times := ode.LinSpace(s.tmin, s.tmax, s.tcount)
	ig := s.pickIntegrator(sys.multistep)

	s.log.Debug().
		Str("model", sys.method).
		Str("integrator", ig.Name()).
		Int("state", sys.layout.Size()).
		Float64("tmin", s.tmin).
		Float64("tmax", s.tmax).
		Int("tcount", s.tcount).
		Msg("integrating")

	traj, st, err := ig.Integrate(ctx, sys.rhs, sys.y0, times)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("model", sys.method).
		Int("steps", st.Steps).
		Int("rejected", st.Rejected).
		Int("evaluations", st.Evaluations).
		Msg("integrated")

	series, err := sys.layout.Split(traj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sys.method, err)
	}

	return &solution{times: times, series: series, stats: st}, nil
}

// result starts a Result from sol, attaching the detail series when requested.
func (s *settings) result(sol *solution, keep ...string) *Result {
	res := &Result{Times: sol.times, Stats: sol.stats}
	if s.fullData {
		res.Detail = make(map[string]*layout.Series, len(keep))
		for _, k := range keep {
			res.Detail[k] = sol.series[k]
		}
	}

	return res
}

// safeDiv returns num/den, or 0 when den is exactly zero. Every closure
// divides through it: a compartment that has emptied contributes nothing.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
