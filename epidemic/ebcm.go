// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/layout"
	"gonum.org/v1/gonum/mat"
)

const (
	MethodEBCM         = "EBCM"
	MethodEBCMDiscrete = "EBCMDiscrete"
)

// scaledGenerator is c·g.
type scaledGenerator struct {
	g Generator
	c float64
}

func (s scaledGenerator) Psi(x float64) float64   { return s.c * s.g.Psi(x) }
func (s scaledGenerator) Prime(x float64) float64 { return s.c * s.g.Prime(x) }

// EBCM integrates the continuous-time edge-based compartmental SIR model.
// psihat is the generating function of initially susceptible vertices
// normalised by N, phiS0 the probability that a partner is initially
// susceptible. θ is the probability that a partner has not transmitted:
//
//	dθ/dt = -τθ + τ φS0 ψ̂'(θ)/ψ̂'(1) + γ(1-θ) + τ φR0
//	S = Nψ̂(θ),  I = N - S - R,  dR/dt = γI
//
// φR0 and R0 default to zero (WithPhiR0, WithInitialRecovered).
//
// Detail keys: "theta".
func EBCM(ctx context.Context, N float64, psihat Generator, tau, gamma, phiS0 float64, opts ...Option) (*Result, error) {
	const method = MethodEBCM
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if psihat == nil {
		return nil, configErr(method, ErrMissingIC)
	}
	if err := nonNegative(method, []string{"N", "R0"}, N, s.r0); err != nil {
		return nil, err
	}
	phiR0 := s.phiR0Or(0)
	prime1 := psihat.Prime(1)

	l, _ := layout.New(layout.Scalar("theta"), layout.Scalar("R"))
	rhs := func(_ float64, y, dy []float64) {
		theta, R := y[0], y[1]
		dy[0] = -tau*theta + tau*phiS0*safeDiv(psihat.Prime(theta), prime1) + gamma*(1-theta) + tau*phiR0
		dy[1] = gamma * (N - N*psihat.Psi(theta) - R)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{1, s.r0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	thetas := sol.series["theta"].Scalar()
	res := s.result(sol, "theta")
	res.R = sol.series["R"].Scalar()
	res.S = totals(len(sol.times), func(r int) float64 { return N * psihat.Psi(thetas[r]) })
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.R[r] })

	return res, nil
}

// EBCMUniformIntroduction runs EBCM with a fraction rho of vertices
// infected at random: ψ̂ = (1-ρ)ψ and φS0 = 1-ρ.
func EBCMUniformIntroduction(ctx context.Context, N float64, psi Generator, tau, gamma, rho float64, opts ...Option) (*Result, error) {
	if rho < 0 || rho > 1 {
		return nil, fmt.Errorf("%s: rho=%g: %w", MethodEBCM, rho, ErrBadParameter)
	}
	if psi == nil {
		return nil, configErr(MethodEBCM, ErrMissingIC)
	}

	return EBCM(ctx, N, scaledGenerator{g: psi, c: 1 - rho}, tau, gamma, 1-rho, opts...)
}

// EBCMFromGraph runs EBCMUniformIntroduction with the degree distribution
// of g and ρ defaulting to 1/N.
func EBCMFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	N, pk, rho, err := newSettings(opts...).generatorStart(MethodEBCM, g)
	if err != nil {
		return nil, err
	}

	return EBCMUniformIntroduction(ctx, N, pk.GeneratingFunction(), tau, gamma, rho, opts...)
}

func (s *settings) generatorStart(method string, g core.Network) (float64, degree.Distribution, float64, error) {
	rho, err := s.graphRho(method, g)
	if err != nil {
		return 0, nil, 0, err
	}
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return 0, nil, 0, configErr(method, err)
	}

	return float64(g.Order()), pk, rho, nil
}

// EBCMDiscrete iterates the discrete-time EBCM recurrence once per integer
// time 0..tmax, p being the per-step transmission probability:
//
//	θ' = (1-p) + p(φR0 + φS0 ψ̂'(θ)/ψ̂'(1))
//	R' = R + I,  S' = Nψ̂(θ'),  I' = N - R' - S'
//
// with θ = 1, R = R0, S = Nψ̂(1) and I = N - S - R at time 0. Infected
// vertices stay infected for exactly one step. The report grid options
// are ignored.
//
// Detail keys: "theta".
func EBCMDiscrete(ctx context.Context, N float64, psihat Generator, p, phiS0 float64, tmax int, opts ...Option) (*Result, error) {
	const method = MethodEBCMDiscrete
	s := newSettings(opts...)
	if p < 0 || p > 1 || tmax < 0 {
		return nil, fmt.Errorf("%s: p=%g tmax=%d: %w", method, p, tmax, ErrBadParameter)
	}
	if psihat == nil {
		return nil, configErr(method, ErrMissingIC)
	}
	if err := nonNegative(method, []string{"N", "R0"}, N, s.r0); err != nil {
		return nil, err
	}
	phiR0 := s.phiR0Or(0)
	prime1 := psihat.Prime(1)

	T := tmax + 1
	res := &Result{
		Times: make([]float64, T),
		S:     make([]float64, T),
		I:     make([]float64, T),
		R:     make([]float64, T),
	}
	theta := make([]float64, T)
	theta[0], res.R[0] = 1, s.r0
	res.S[0] = N * psihat.Psi(1)
	res.I[0] = N - res.S[0] - res.R[0]
	for t := 1; t < T; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: t=%d: %w", method, t, err)
		}
		res.Times[t] = float64(t)
		theta[t] = (1 - p) + p*(phiR0+phiS0*safeDiv(psihat.Prime(theta[t-1]), prime1))
		res.R[t] = res.R[t-1] + res.I[t-1]
		res.S[t] = N * psihat.Psi(theta[t])
		res.I[t] = N - res.R[t] - res.S[t]
	}
	s.log.Debug().Str("model", method).Int("steps", tmax).Msg("iterated")

	if s.fullData {
		res.Detail = map[string]*layout.Series{
			"theta": {Section: layout.Scalar("theta"), Data: mat.NewDense(T, 1, theta)},
		}
	}

	return res, nil
}

// EBCMDiscreteUniformIntroduction runs EBCMDiscrete with a fraction rho of
// vertices infected at random: ψ̂ = (1-ρ)ψ and φS0 = 1-ρ.
func EBCMDiscreteUniformIntroduction(ctx context.Context, N float64, psi Generator, p, rho float64, tmax int, opts ...Option) (*Result, error) {
	if rho < 0 || rho > 1 {
		return nil, fmt.Errorf("%s: rho=%g: %w", MethodEBCMDiscrete, rho, ErrBadParameter)
	}
	if psi == nil {
		return nil, configErr(MethodEBCMDiscrete, ErrMissingIC)
	}

	return EBCMDiscrete(ctx, N, scaledGenerator{g: psi, c: 1 - rho}, p, 1-rho, tmax, opts...)
}

// EBCMDiscreteFromGraph runs EBCMDiscreteUniformIntroduction with the
// degree distribution of g and ρ defaulting to 1/N.
func EBCMDiscreteFromGraph(ctx context.Context, g core.Network, p float64, tmax int, opts ...Option) (*Result, error) {
	N, pk, rho, err := newSettings(opts...).generatorStart(MethodEBCMDiscrete, g)
	if err != nil {
		return nil, err
	}

	return EBCMDiscreteUniformIntroduction(ctx, N, pk.GeneratingFunction(), p, rho, tmax, opts...)
}
