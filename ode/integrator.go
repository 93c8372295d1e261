// SPDX-License-Identifier: MIT

package ode

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Func evaluates the right-hand side at (t, y) into dy.
// y must not be retained or modified.
type Func func(t float64, y, dy []float64)

// Integrator advances y0 through times.
type Integrator interface {
	// Name identifies the method in logs, errors and metrics.
	Name() string
	// Integrate returns the state at every report time.
	Integrate(ctx context.Context, f Func, y0, times []float64) (*mat.Dense, Statistics, error)
}

// Statistics summarises one Integrate call.
type Statistics struct {
	Steps       int     // accepted steps
	Rejected    int     // rejected steps
	Evaluations int     // calls to Func
	LastStep    float64 // size of the last accepted step
}

// Observer receives step events. Implementations must be safe for
// concurrent use when one Integrator is shared across goroutines.
type Observer interface {
	StepAccepted(method string, h float64)
	StepRejected(method string, h float64)
	Finished(method string, stats Statistics, err error)
}

// Defaults follow the usual LSODA-style tolerances.
const (
	DefaultRelTol   = 1.49012e-8
	DefaultAbsTol   = 1.49012e-8
	DefaultMaxSteps = 500000
)

type config struct {
	rtol, atol float64
	maxSteps   int
	h0         float64
	hmin       float64
	log        zerolog.Logger
	obs        Observer
}

func newConfig(opts ...Option) config {
	c := config{
		rtol:     DefaultRelTol,
		atol:     DefaultAbsTol,
		maxSteps: DefaultMaxSteps,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Option customizes an integrator.
type Option func(*config)

// WithTolerances sets the relative and absolute error tolerances.
// Panics unless both are positive.
func WithTolerances(rtol, atol float64) Option {
	if !(rtol > 0) || !(atol > 0) {
		panic(fmt.Sprintf("ode: WithTolerances(%g, %g)", rtol, atol))
	}
	return func(c *config) { c.rtol, c.atol = rtol, atol }
}

// WithMaxSteps bounds the number of attempted steps. Panics unless n > 0.
func WithMaxSteps(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("ode: WithMaxSteps(%d)", n))
	}
	return func(c *config) { c.maxSteps = n }
}

// WithInitialStep fixes the first trial step. Zero selects it automatically.
func WithInitialStep(h float64) Option {
	if h < 0 {
		panic(fmt.Sprintf("ode: WithInitialStep(%g)", h))
	}
	return func(c *config) { c.h0 = h }
}

// WithMinStep sets the smallest step before ErrStepTooSmall.
func WithMinStep(h float64) Option {
	if h < 0 {
		panic(fmt.Sprintf("ode: WithMinStep(%g)", h))
	}
	return func(c *config) { c.hmin = h }
}

// WithLogger routes rejected-step traces to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithObserver reports step events to o. Panics on nil.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("ode: WithObserver(nil)")
	}
	return func(c *config) { c.obs = o }
}

// minStep is the floor below which the controller gives up at time t.
func (c *config) minStep(t float64) float64 {
	floor := 16 * eps * math.Max(math.Abs(t), 1)
	return math.Max(c.hmin, floor)
}

func (c *config) accepted(method string, h float64) {
	if c.obs != nil {
		c.obs.StepAccepted(method, h)
	}
}

func (c *config) rejected(method string, t, h, errNorm float64) {
	c.log.Trace().Str("method", method).Float64("t", t).Float64("h", h).Float64("err", errNorm).Msg("step rejected")
	if c.obs != nil {
		c.obs.StepRejected(method, h)
	}
}

func (c *config) finished(method string, st Statistics, err error) {
	if c.obs != nil {
		c.obs.Finished(method, st, err)
	}
}

const eps = 2.220446049250313e-16

// prepare validates inputs and allocates the trajectory with row 0 = y0.
func prepare(method string, y0, times []float64) (*mat.Dense, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrNoTimes)
	}
	if len(y0) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyState)
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, fmt.Errorf("%s: times[%d]=%g < times[%d]=%g: %w", method, i, times[i], i-1, times[i-1], ErrTimesNotMonotone)
		}
	}
	if !finite(y0) {
		return nil, &IntegrationError{Method: method, Time: times[0], Err: ErrNonFinite}
	}
	out := mat.NewDense(len(times), len(y0), nil)
	out.SetRow(0, y0)

	return out, nil
}

func finite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
