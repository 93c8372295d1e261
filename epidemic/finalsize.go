// SPDX-License-Identifier: MIT

package epidemic

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/ode"
	"gonum.org/v1/gonum/floats"
)

const (
	MethodEpiProbDiscrete      = "EpiProbDiscrete"
	MethodEpiProbContinuous    = "EpiProbContinuous"
	MethodEpiProbNonMarkovian  = "EpiProbNonMarkovian"
	MethodAttackRateDiscrete   = "AttackRateDiscrete"
	MethodAttackRateContinuous = "AttackRateContinuous"
)

// Sample is one point of a discretised distribution of infectious
// histories ξ with its probability weight.
type Sample struct {
	Xi     float64
	Weight float64
}

// fixedPoint applies f n times from x.
func fixedPoint(n int, x float64, f func(float64) float64) Estimate {
	var delta float64
	for i := 0; i < n; i++ {
		next := f(x)
		delta = math.Abs(next - x)
		x = next
	}

	return Estimate{Value: x, Iterations: n, LastDelta: delta}
}

func checkDistribution(method string, pk degree.Distribution) error {
	if len(pk) == 0 {
		return configErr(method, degree.ErrEmptyNetwork)
	}
	for k, w := range pk {
		if k < 0 || w < 0 {
			return fmt.Errorf("%s: P(%d)=%g: %w", method, k, w, ErrBadParameter)
		}
	}

	return nil
}

func checkProbability(method, name string, p float64) error {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return fmt.Errorf("%s: %s=%g: %w", method, name, p, ErrBadParameter)
	}

	return nil
}

// EpiProbDiscrete returns the probability that a single random introduction
// grows into an epidemic when each edge transmits with probability p. With
// α = 1-p initially it iterates α = 1 - p + p ψ'(α)/⟨k⟩ and reports 1 - ψ(α).
// WithIterations sets the iteration count.
func EpiProbDiscrete(pk degree.Distribution, p float64, opts ...Option) (Estimate, error) {
	const method = MethodEpiProbDiscrete
	s := newSettings(opts...)
	if err := checkDistribution(method, pk); err != nil {
		return Estimate{}, err
	}
	if err := checkProbability(method, "p", p); err != nil {
		return Estimate{}, err
	}

	psi := pk.GeneratingFunction()
	kave := psi.Prime(1)
	est := fixedPoint(s.iterations, 1-p, func(alpha float64) float64 {
		return 1 - p + p*safeDiv(psi.Prime(alpha), kave)
	})
	est.Value = 1 - psi.Psi(est.Value)

	return est, nil
}

// uGrid is the Riemann grid u_j with weights e^{-u_j}·du.
func (s *settings) uGrid(method string) (us, weights []float64, err error) {
	if s.ucount < 2 || !(s.umax > s.umin) {
		return nil, nil, fmt.Errorf("%s: umin=%g umax=%g ucount=%d: %w", method, s.umin, s.umax, s.ucount, ErrBadParameter)
	}
	us = ode.LinSpace(s.umin, s.umax, s.ucount)
	du := (s.umax - s.umin) / float64(s.ucount-1)
	weights = make([]float64, len(us))
	for j, u := range us {
		weights[j] = math.Exp(-u) * du
	}

	return us, weights, nil
}

// EpiProbContinuous returns the epidemic probability for continuous-time
// SIR with exponential infectious periods. Over u = γT on the WithUGrid
// grid, the transmission probability is p(u) = 1 - e^{-τu/γ}; α(u) starts
// at e^{-τu/γ} and iterates
//
//	α(u) = 1 - p(u) + p(u) ∫ ψ'(α(v))/⟨k⟩ e^{-v} dv
//
// reporting 1 - ∫ ψ(α(u)) e^{-u} du. The integrals are left Riemann sums.
// LastDelta is the largest change of α over the grid.
func EpiProbContinuous(pk degree.Distribution, tau, gamma float64, opts ...Option) (Estimate, error) {
	const method = MethodEpiProbContinuous
	s := newSettings(opts...)
	if err := checkDistribution(method, pk); err != nil {
		return Estimate{}, err
	}
	if tau < 0 || !(gamma > 0) {
		return Estimate{}, fmt.Errorf("%s: tau=%g gamma=%g: %w", method, tau, gamma, ErrBadParameter)
	}
	us, w, err := s.uGrid(method)
	if err != nil {
		return Estimate{}, err
	}

	psi := pk.GeneratingFunction()
	kave := psi.Prime(1)
	alpha := make([]float64, len(us))
	p := make([]float64, len(us))
	for j, u := range us {
		alpha[j] = math.Exp(-tau * u / gamma)
		p[j] = 1 - alpha[j]
	}
	prime := make([]float64, len(us))
	var delta float64
	for it := 0; it < s.iterations; it++ {
		for j, a := range alpha {
			prime[j] = safeDiv(psi.Prime(a), kave)
		}
		mix := floats.Dot(prime, w)
		delta = 0
		for j := range alpha {
			next := 1 - p[j] + p[j]*mix
			delta = math.Max(delta, math.Abs(next-alpha[j]))
			alpha[j] = next
		}
	}
	vals := make([]float64, len(us))
	for j, a := range alpha {
		vals[j] = psi.Psi(a)
	}

	return Estimate{Value: 1 - floats.Dot(vals, w), Iterations: s.iterations, LastDelta: delta}, nil
}

// EpiProbNonMarkovian returns the epidemic probability when infectious
// histories ξ follow the weighted samples and po(ξ) is the probability a
// vertex with history ξ transmits to a given partner. α_ξ starts at
// 1 - po(ξ) and iterates
//
//	α_ξ = 1 - po(ξ) + po(ξ) Σ_ξ' ψ'(α_ξ') w_ξ' / ⟨k⟩
//
// reporting 1 - Σ_ξ ψ(α_ξ) w_ξ. LastDelta is the largest change of α.
func EpiProbNonMarkovian(pk degree.Distribution, samples []Sample, po func(xi float64) float64, opts ...Option) (Estimate, error) {
	const method = MethodEpiProbNonMarkovian
	s := newSettings(opts...)
	if err := checkDistribution(method, pk); err != nil {
		return Estimate{}, err
	}
	if len(samples) == 0 || po == nil {
		return Estimate{}, fmt.Errorf("%s: need samples and po: %w", method, ErrMissingIC)
	}

	psi := pk.GeneratingFunction()
	kave := psi.Prime(1)
	n := len(samples)
	trans := make([]float64, n)
	w := make([]float64, n)
	alpha := make([]float64, n)
	for j, smp := range samples {
		trans[j] = po(smp.Xi)
		if err := checkProbability(method, fmt.Sprintf("po(%g)", smp.Xi), trans[j]); err != nil {
			return Estimate{}, err
		}
		if smp.Weight < 0 {
			return Estimate{}, fmt.Errorf("%s: weight(%g)=%g: %w", method, smp.Xi, smp.Weight, ErrBadParameter)
		}
		w[j] = smp.Weight
		alpha[j] = 1 - trans[j]
	}
	prime := make([]float64, n)
	var delta float64
	for it := 0; it < s.iterations; it++ {
		for j, a := range alpha {
			prime[j] = psi.Prime(a)
		}
		mix := safeDiv(floats.Dot(prime, w), kave)
		delta = 0
		for j := range alpha {
			next := 1 - trans[j] + trans[j]*mix
			delta = math.Max(delta, math.Abs(next-alpha[j]))
			alpha[j] = next
		}
	}
	vals := make([]float64, n)
	for j, a := range alpha {
		vals[j] = psi.Psi(a)
	}

	return Estimate{Value: 1 - floats.Dot(vals, w), Iterations: s.iterations, LastDelta: delta}, nil
}

// susceptibleGenerator returns ψ̂(x) = Σ Pk Sk0(k) x^k. Sk0 comes from
// WithInitialSusceptible or is 1-ρ for every degree; ρ and Sk0 are
// mutually exclusive.
func (s *settings) susceptibleGenerator(method string, pk degree.Distribution) (*degree.GeneratingFunction, error) {
	if s.rho != nil && s.sk0 != nil {
		return nil, fmt.Errorf("%s: rho and Sk0: %w", method, ErrExclusiveParams)
	}
	weights := make(map[int]float64, len(pk))
	if s.sk0 == nil {
		var rho float64
		if s.rho != nil {
			rho = *s.rho
		}
		if err := checkProbability(method, "rho", rho); err != nil {
			return nil, err
		}
		for k, p := range pk {
			weights[k] = p * (1 - rho)
		}
		return degree.NewGeneratingFunction(weights), nil
	}
	for k, p := range pk {
		frac, ok := s.sk0[k]
		if !ok {
			return nil, fmt.Errorf("%s: Sk0 has no entry for degree %d: %w", method, k, ErrMissingIC)
		}
		weights[k] = p * frac
	}

	return degree.NewGeneratingFunction(weights), nil
}

// AttackRateDiscrete returns the expected final fraction infected when each
// edge transmits with probability p. Without Sk0 and with ρ unset or zero
// it is EpiProbDiscrete. Otherwise, from θ = 1,
//
//	θ = 1 - p + p(φR0 + φS0 ψ̂'(θ)/ψ̂'(1))
//
// and the result is 1 - ψ̂(θ). φS0 defaults to ψ̂'(1)/⟨k⟩ and φR0 to 0.
func AttackRateDiscrete(pk degree.Distribution, p float64, opts ...Option) (Estimate, error) {
	const method = MethodAttackRateDiscrete
	s := newSettings(opts...)
	if err := checkDistribution(method, pk); err != nil {
		return Estimate{}, err
	}
	if err := checkProbability(method, "p", p); err != nil {
		return Estimate{}, err
	}
	if s.rho != nil && s.sk0 != nil {
		return Estimate{}, fmt.Errorf("%s: rho and Sk0: %w", method, ErrExclusiveParams)
	}
	if s.sk0 == nil && (s.rho == nil || *s.rho == 0) {
		return EpiProbDiscrete(pk, p, opts...)
	}
	psihat, err := s.susceptibleGenerator(method, pk)
	if err != nil {
		return Estimate{}, err
	}

	prime1 := psihat.Prime(1)
	phiS0 := safeDiv(prime1, pk.Mean())
	if s.phiS0 != nil {
		phiS0 = *s.phiS0
	}
	phiR0 := s.phiR0Or(0)
	est := fixedPoint(s.iterations, 1, func(theta float64) float64 {
		return 1 - p + p*(phiR0+phiS0*safeDiv(psihat.Prime(theta), prime1))
	})
	est.Value = 1 - psihat.Psi(est.Value)

	return est, nil
}

// AttackRateContinuous returns the expected final fraction infected in
// continuous-time SIR. ρ defaults to 0. From ω = γ/(γ+τ),
//
//	ω = γ/(γ+τ) + τ φS0 ψ̂'(ω)/(ψ̂'(1)(γ+τ)) + τ φR0/(γ+τ)
//
// and the result is 1 - ψ̂(ω). φS0 defaults to ψ̂'(1)/⟨k⟩ and φR0 to 0.
func AttackRateContinuous(pk degree.Distribution, tau, gamma float64, opts ...Option) (Estimate, error) {
	const method = MethodAttackRateContinuous
	s := newSettings(opts...)
	if err := checkDistribution(method, pk); err != nil {
		return Estimate{}, err
	}
	if tau < 0 || gamma < 0 || !(tau+gamma > 0) {
		return Estimate{}, fmt.Errorf("%s: tau=%g gamma=%g: %w", method, tau, gamma, ErrBadParameter)
	}
	psihat, err := s.susceptibleGenerator(method, pk)
	if err != nil {
		return Estimate{}, err
	}

	prime1 := psihat.Prime(1)
	phiS0 := safeDiv(prime1, pk.Mean())
	if s.phiS0 != nil {
		phiS0 = *s.phiS0
	}
	phiR0 := s.phiR0Or(0)
	rate := tau + gamma
	est := fixedPoint(s.iterations, gamma/rate, func(omega float64) float64 {
		return gamma/rate + tau*phiS0*safeDiv(psihat.Prime(omega), prime1*rate) + tau*phiR0/rate
	})
	est.Value = 1 - psihat.Psi(est.Value)

	return est, nil
}

// AttackRateDiscreteFromGraph is AttackRateDiscrete over the degree
// distribution of g.
func AttackRateDiscreteFromGraph(g core.Network, p float64, opts ...Option) (Estimate, error) {
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return Estimate{}, configErr(MethodAttackRateDiscrete, err)
	}

	return AttackRateDiscrete(pk, p, opts...)
}

// AttackRateContinuousFromGraph is AttackRateContinuous over the degree
// distribution of g.
func AttackRateContinuousFromGraph(g core.Network, tau, gamma float64, opts ...Option) (Estimate, error) {
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return Estimate{}, configErr(MethodAttackRateContinuous, err)
	}

	return AttackRateContinuous(pk, tau, gamma, opts...)
}
