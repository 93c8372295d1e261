// SPDX-License-Identifier: MIT

package epidemic

import (
	"fmt"

	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/ode"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Defaults of the report grid and the fixed-point iterations.
const (
	DefaultTmin       = 0.0
	DefaultTmax       = 100.0
	DefaultTcount     = 1001
	DefaultIterations = 100
	DefaultUmin       = 0.0
	DefaultUmax       = 10.0
	DefaultUcount     = 1001
)

// Option customizes a model call. Options a model does not use are ignored.
type Option func(*settings)

type settings struct {
	tmin, tmax float64
	tcount     int
	fullData   bool

	rho    *float64
	transW string
	recW   string

	nodes []string
	edges [][2]string
	index *degree.Index

	x0, y0   []float64
	xy0, xx0 mat.Matrix
	exy, eyx []float64
	exx      []float64

	iterations int
	sk0        map[int]float64
	phiS0      *float64
	phiR0      *float64
	r0         float64
	umin, umax float64
	ucount     int

	integrator ode.Integrator
	solverOpts []ode.Option
	log        zerolog.Logger
}

func newSettings(opts ...Option) *settings {
	s := &settings{
		tmin:       DefaultTmin,
		tmax:       DefaultTmax,
		tcount:     DefaultTcount,
		iterations: DefaultIterations,
		umin:       DefaultUmin,
		umax:       DefaultUmax,
		ucount:     DefaultUcount,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithTimes sets the report grid: tcount equally spaced times from tmin to tmax inclusive.
func WithTimes(tmin, tmax float64, tcount int) Option {
	return func(s *settings) { s.tmin, s.tmax, s.tcount = tmin, tmax, tcount }
}

// WithFullData populates Result.Detail with every structured compartment.
func WithFullData() Option {
	return func(s *settings) { s.fullData = true }
}

// WithRho sets the initially infected fraction. Graph wrappers default to 1/N.
func WithRho(rho float64) Option {
	return func(s *settings) { s.rho = &rho }
}

// WithTransmissionWeight scales τ per edge by the named edge attribute.
func WithTransmissionWeight(label string) Option {
	return func(s *settings) { s.transW = label }
}

// WithRecoveryWeight scales γ per vertex by the named vertex attribute.
func WithRecoveryWeight(label string) Option {
	return func(s *settings) { s.recW = label }
}

// WithNodeList fixes the vertex order of node-level initial conditions and results.
func WithNodeList(nodes []string) Option {
	return func(s *settings) { s.nodes = append([]string(nil), nodes...) }
}

// WithEdgeList fixes the edge order of edge-level initial conditions.
func WithEdgeList(edges [][2]string) Option {
	return func(s *settings) { s.edges = append([][2]string(nil), edges...) }
}

// WithDegreeIndex names the degree at each position of per-degree arrays.
// Without it position k holds degree k.
func WithDegreeIndex(ix *degree.Index) Option {
	return func(s *settings) { s.index = ix }
}

// WithSusceptible sets the per-node susceptible probabilities X0.
func WithSusceptible(x0 []float64) Option {
	return func(s *settings) { s.x0 = append([]float64(nil), x0...) }
}

// WithInfected sets the per-node infected probabilities Y0.
func WithInfected(y0 []float64) Option {
	return func(s *settings) { s.y0 = append([]float64(nil), y0...) }
}

// WithPairs sets the N×N pair probabilities XY0 = P(i S, j I) and
// XX0 = P(i S, j S). Either may be nil to use the product default.
func WithPairs(xy0, xx0 mat.Matrix) Option {
	return func(s *settings) {
		if xy0 != nil {
			s.xy0 = mat.DenseCopyOf(xy0)
		}
		if xx0 != nil {
			s.xx0 = mat.DenseCopyOf(xx0)
		}
	}
}

// WithEdgeIC sets per-edge pair probabilities aligned with the edge list.
// Any of the three may be nil; all or none must be set.
func WithEdgeIC(xy0, yx0, xx0 []float64) Option {
	return func(s *settings) {
		if xy0 != nil {
			s.exy = append([]float64(nil), xy0...)
		}
		if yx0 != nil {
			s.eyx = append([]float64(nil), yx0...)
		}
		if xx0 != nil {
			s.exx = append([]float64(nil), xx0...)
		}
	}
}

// WithIterations sets the fixed-point iteration count. Panics unless n > 0.
func WithIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("epidemic: WithIterations(%d)", n))
	}
	return func(s *settings) { s.iterations = n }
}

// WithInitialSusceptible sets Sk0, the susceptible fraction of each degree class.
func WithInitialSusceptible(sk0 map[int]float64) Option {
	return func(s *settings) {
		s.sk0 = make(map[int]float64, len(sk0))
		for k, v := range sk0 {
			s.sk0[k] = v
		}
	}
}

// WithPhiS0 sets φS(0), the probability a random partner is initially susceptible.
func WithPhiS0(v float64) Option {
	return func(s *settings) { s.phiS0 = &v }
}

// WithPhiR0 sets φR(0), the probability a random partner is initially recovered.
func WithPhiR0(v float64) Option {
	return func(s *settings) { s.phiR0 = &v }
}

// WithInitialRecovered sets R(0) for the edge-based models.
func WithInitialRecovered(r0 float64) Option {
	return func(s *settings) { s.r0 = r0 }
}

// WithUGrid sets the Riemann grid over u = γT for continuous-time final sizes.
func WithUGrid(umin, umax float64, ucount int) Option {
	return func(s *settings) { s.umin, s.umax, s.ucount = umin, umax, ucount }
}

// WithIntegrator replaces the model's default integrator.
func WithIntegrator(ig ode.Integrator) Option {
	return func(s *settings) { s.integrator = ig }
}

// WithSolverOptions configures the integrator the model picks by default,
// keeping its choice of method. Ignored together with WithIntegrator.
func WithSolverOptions(opts ...ode.Option) Option {
	return func(s *settings) { s.solverOpts = append(s.solverOpts, opts...) }
}

// WithLogger routes debug events of the model call to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.log = l }
}

func (s *settings) phiR0Or(def float64) float64 {
	if s.phiR0 == nil {
		return def
	}
	return *s.phiR0
}

// extend returns opts followed by extra without touching the caller's backing array.
func extend(opts []Option, extra ...Option) []Option {
	out := make([]Option, 0, len(opts)+len(extra))
	return append(append(out, opts...), extra...)
}
