// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/layout"
)

const (
	MethodSISHomogeneousMeanfield = "SISHomogeneousMeanfield"
	MethodSIRHomogeneousMeanfield = "SIRHomogeneousMeanfield"
	MethodSISHomogeneousPairwise  = "SISHomogeneousPairwise"
	MethodSIRHomogeneousPairwise  = "SIRHomogeneousPairwise"
)

// nonNegative rejects negative or NaN compartment sizes.
func nonNegative(method string, names []string, vals ...float64) error {
	for i, v := range vals {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%s: %s=%g: %w", method, names[i], v, ErrBadParameter)
		}
	}

	return nil
}

func positiveDegree(method string, n float64) error {
	if !(n > 0) {
		return fmt.Errorf("%s: n=%g: %w", method, n, ErrBadParameter)
	}

	return nil
}

// SISHomogeneousMeanfield integrates the well-mixed SIS equations on a
// network where every vertex has degree n:
//
//	dS/dt = γI - τ(n/N)SI,  dI/dt = -dS/dt,  N = S0 + I0.
func SISHomogeneousMeanfield(ctx context.Context, S0, I0, n, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISHomogeneousMeanfield
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"S0", "I0"}, S0, I0); err != nil {
		return nil, err
	}
	if err := positiveDegree(method, n); err != nil {
		return nil, err
	}

	N := S0 + I0
	beta := safeDiv(tau*n, N)
	l, _ := layout.New(layout.Scalar("S"), layout.Scalar("I"))
	rhs := func(_ float64, y, dy []float64) {
		inf := beta * y[0] * y[1]
		dy[0] = gamma*y[1] - inf
		dy[1] = -dy[0]
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{S0, I0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol)
	res.S = sol.series["S"].Scalar()
	res.I = sol.series["I"].Scalar()

	return res, nil
}

// SIRHomogeneousMeanfield integrates the well-mixed SIR equations on a
// network where every vertex has degree n:
//
//	dS/dt = -τ(n/N)SI,  dI/dt = τ(n/N)SI - γI,  R = N - S - I.
func SIRHomogeneousMeanfield(ctx context.Context, S0, I0, R0, n, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRHomogeneousMeanfield
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"S0", "I0", "R0"}, S0, I0, R0); err != nil {
		return nil, err
	}
	if err := positiveDegree(method, n); err != nil {
		return nil, err
	}

	N := S0 + I0 + R0
	beta := safeDiv(tau*n, N)
	l, _ := layout.New(layout.Scalar("S"), layout.Scalar("I"))
	rhs := func(_ float64, y, dy []float64) {
		inf := beta * y[0] * y[1]
		dy[0] = -inf
		dy[1] = inf - gamma*y[1]
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{S0, I0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol)
	res.S = sol.series["S"].Scalar()
	res.I = sol.series["I"].Scalar()
	res.R = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.I[r] })

	return res, nil
}

// homogeneousStart is the uniform introduction on g: N, ⟨k⟩ and ρ.
func (s *settings) homogeneousStart(method string, g core.Network) (N, n, rho float64, err error) {
	if rho, err = s.graphRho(method, g); err != nil {
		return 0, 0, 0, err
	}
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return 0, 0, 0, configErr(method, err)
	}

	return float64(g.Order()), pk.Mean(), rho, nil
}

// SISHomogeneousMeanfieldFromGraph runs SISHomogeneousMeanfield with n = ⟨k⟩
// of g and a fraction ρ (default 1/N) initially infected.
func SISHomogeneousMeanfieldFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	N, n, rho, err := newSettings(opts...).homogeneousStart(MethodSISHomogeneousMeanfield, g)
	if err != nil {
		return nil, err
	}

	return SISHomogeneousMeanfield(ctx, (1-rho)*N, rho*N, n, tau, gamma, opts...)
}

// SIRHomogeneousMeanfieldFromGraph runs SIRHomogeneousMeanfield with n = ⟨k⟩
// of g and a fraction ρ (default 1/N) initially infected.
func SIRHomogeneousMeanfieldFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	N, n, rho, err := newSettings(opts...).homogeneousStart(MethodSIRHomogeneousMeanfield, g)
	if err != nil {
		return nil, err
	}

	return SIRHomogeneousMeanfield(ctx, (1-rho)*N, rho*N, 0, n, tau, gamma, opts...)
}

// checkPairBudget rejects pair counts needing more edge endpoints than nN.
func checkPairBudget(method string, SI0, SS0, n, N float64) error {
	if SS0+2*SI0 > n*N {
		return fmt.Errorf("%s: SS0+2*SI0=%g exceeds n*N=%g: %w", method, SS0+2*SI0, n*N, ErrInconsistentIC)
	}

	return nil
}

// SISHomogeneousPairwise integrates the SIS pair approximation on an
// n-regular network. SI0 and SS0 count ordered pairs; II follows from the
// nN edge endpoints:
//
//	dS/dt  = γI - τ[SI]
//	d[SI]/dt = γ([II]-[SI]) + τ((n-1)/n)[SI]([SS]-[SI])/S - τ[SI]
//	d[SS]/dt = 2γ[SI] - 2τ((n-1)/n)[SI][SS]/S
//
// Detail keys: "SI", "SS", "II".
func SISHomogeneousPairwise(ctx context.Context, S0, I0, SI0, SS0, n, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISHomogeneousPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"S0", "I0", "SI0", "SS0"}, S0, I0, SI0, SS0); err != nil {
		return nil, err
	}
	if err := positiveDegree(method, n); err != nil {
		return nil, err
	}
	N := S0 + I0
	if err := checkPairBudget(method, SI0, SS0, n, N); err != nil {
		return nil, err
	}

	c := (n - 1) / n
	l, _ := layout.New(layout.Scalar("S"), layout.Scalar("SI"), layout.Scalar("SS"))
	rhs := func(_ float64, y, dy []float64) {
		S, SI, SS := y[0], y[1], y[2]
		I := N - S
		II := N*n - SS - 2*SI
		dy[0] = gamma*I - tau*SI
		dy[1] = gamma*(II-SI) + tau*c*safeDiv(SI*(SS-SI), S) - tau*SI
		dy[2] = 2*gamma*SI - 2*tau*c*safeDiv(SI*SS, S)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{S0, SI0, SS0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "SI", "SS")
	res.S = sol.series["S"].Scalar()
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] })
	if s.fullData {
		si, ss := sol.series["SI"].Scalar(), sol.series["SS"].Scalar()
		res.Detail["II"] = derive("II", 1, 1, len(sol.times), func(r int, out []float64) {
			out[0] = N*n - ss[r] - 2*si[r]
		})
	}

	return res, nil
}

// SIRHomogeneousPairwise integrates the SIR pair approximation on an
// n-regular network:
//
//	dS/dt  = -τ[SI]
//	dI/dt  = τ[SI] - γI
//	d[SI]/dt = -γ[SI] + τ((n-1)/n)[SI]([SS]-[SI])/S - τ[SI]
//	d[SS]/dt = -2τ((n-1)/n)[SI][SS]/S
//
// Detail keys: "SI", "SS".
func SIRHomogeneousPairwise(ctx context.Context, S0, I0, R0, SI0, SS0, n, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRHomogeneousPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"S0", "I0", "R0", "SI0", "SS0"}, S0, I0, R0, SI0, SS0); err != nil {
		return nil, err
	}
	if err := positiveDegree(method, n); err != nil {
		return nil, err
	}
	N := S0 + I0 + R0
	if err := checkPairBudget(method, SI0, SS0, n, N); err != nil {
		return nil, err
	}

	c := (n - 1) / n
	l, _ := layout.New(layout.Scalar("S"), layout.Scalar("I"), layout.Scalar("SI"), layout.Scalar("SS"))
	rhs := func(_ float64, y, dy []float64) {
		S, I, SI, SS := y[0], y[1], y[2], y[3]
		dy[0] = -tau * SI
		dy[1] = tau*SI - gamma*I
		dy[2] = -gamma*SI + tau*c*safeDiv(SI*(SS-SI), S) - tau*SI
		dy[3] = -2 * tau * c * safeDiv(SI*SS, S)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{S0, I0, SI0, SS0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "SI", "SS")
	res.S = sol.series["S"].Scalar()
	res.I = sol.series["I"].Scalar()
	res.R = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.I[r] })

	return res, nil
}

// SISHomogeneousPairwiseFromGraph runs SISHomogeneousPairwise with n = ⟨k⟩
// of g, a fraction ρ (default 1/N) infected and pairs split independently.
func SISHomogeneousPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	N, n, rho, err := newSettings(opts...).homogeneousStart(MethodSISHomogeneousPairwise, g)
	if err != nil {
		return nil, err
	}
	SI0 := (1 - rho) * N * n * rho
	SS0 := (1 - rho) * (1 - rho) * N * n

	return SISHomogeneousPairwise(ctx, (1-rho)*N, rho*N, SI0, SS0, n, tau, gamma, opts...)
}

// SIRHomogeneousPairwiseFromGraph runs SIRHomogeneousPairwise with n = ⟨k⟩
// of g, a fraction ρ (default 1/N) infected and pairs split independently.
func SIRHomogeneousPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	N, n, rho, err := newSettings(opts...).homogeneousStart(MethodSIRHomogeneousPairwise, g)
	if err != nil {
		return nil, err
	}
	SI0 := (1 - rho) * N * n * rho
	SS0 := (1 - rho) * (1 - rho) * N * n

	return SIRHomogeneousPairwise(ctx, (1-rho)*N, rho*N, 0, SI0, SS0, n, tau, gamma, opts...)
}
