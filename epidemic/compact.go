// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"math"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/layout"
	"gonum.org/v1/gonum/floats"
)

const (
	MethodSISCompactPairwise      = "SISCompactPairwise"
	MethodSIRCompactPairwise      = "SIRCompactPairwise"
	MethodSISSuperCompactPairwise = "SISSuperCompactPairwise"
	MethodSIRSuperCompactPairwise = "SIRSuperCompactPairwise"
)

// Generator is a probability generating function and its derivative.
// *degree.GeneratingFunction implements it.
type Generator interface {
	Psi(x float64) float64
	Prime(x float64) float64
}

// PGF is a Generator that also provides its second derivative.
type PGF interface {
	Generator
	PrimePrime(x float64) float64
}

// SISCompactPairwise integrates the compact SIS pairwise model: per-degree
// susceptibles plus the total pair counts [SI] and [SS]. [II] follows from
// the 2M = SS0 + II0 + 2·SI0 edge endpoints. With SX = [SI]+[SS] and
// Q = Σ k(k-1)Sk / SX²:
//
//	dSk/dt   = γIk - τ k Sk [SI]/SX
//	d[SI]/dt = γ([II]-[SI]) + τ([SS]-[SI])[SI]Q - τ[SI]
//	d[SS]/dt = 2γ[SI] - 2τ[SS][SI]Q
//
// Detail keys: "Sk", "Ik", "SI", "SS", "II".
func SISCompactPairwise(ctx context.Context, Sk0, Ik0 []float64, SI0, SS0, II0, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISCompactPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := degree.CheckLengths(method, Sk0, Ik0); err != nil {
		return nil, configErr(method, err)
	}
	if err := nonNegative(method, []string{"SI0", "SS0", "II0"}, SI0, SS0, II0); err != nil {
		return nil, err
	}
	ks, err := s.degreesOf(method, len(Sk0))
	if err != nil {
		return nil, err
	}

	K := len(ks)
	kk := make([]float64, K) // k(k-1)
	for i, k := range ks {
		kk[i] = k * (k - 1)
	}
	nk := make([]float64, K)
	floats.AddTo(nk, Sk0, Ik0)
	twoM := SS0 + II0 + 2*SI0

	l, _ := layout.New(layout.Vector("Sk", K), layout.Scalar("SI"), layout.Scalar("SS"))
	start, _ := l.Pack(Sk0, []float64{SI0}, []float64{SS0})
	rhs := func(_ float64, y, dy []float64) {
		sk, dsk := l.View(y, "Sk"), l.View(dy, "Sk")
		si, ss := y[K], y[K+1]
		ii := twoM - ss - 2*si
		sx := si + ss
		q := safeDiv(floats.Dot(kk, sk), sx*sx)
		pressure := safeDiv(si, sx)
		for i, k := range ks {
			dsk[i] = gamma*(nk[i]-sk[i]) - tau*k*sk[i]*pressure
		}
		dy[K] = gamma*(ii-si) + tau*(ss-si)*si*q - tau*si
		dy[K+1] = 2*gamma*si - 2*tau*ss*si*q
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	T := len(sol.times)
	skS := sol.series["Sk"]
	res := s.result(sol, "Sk", "SI", "SS")
	res.S = skS.Totals()
	res.I = totals(T, func(r int) float64 { return floats.Sum(nk) - res.S[r] })
	if s.fullData {
		res.Detail["Ik"] = derive("Ik", K, 1, T, func(r int, out []float64) {
			floats.SubTo(out, nk, skS.At(r))
		})
		si, ss := sol.series["SI"].Scalar(), sol.series["SS"].Scalar()
		res.Detail["II"] = derive("II", 1, 1, T, func(r int, out []float64) {
			out[0] = twoM - ss[r] - 2*si[r]
		})
	}

	return res, nil
}

// SIRCompactPairwise integrates the compact SIR pairwise model. With
// SX = Σ k Sk, Q = Σ k(k-1)Sk / SX² and I = N - ΣSk - R:
//
//	dSk/dt   = -τ k Sk [SI]/SX
//	d[SS]/dt = -2τ[SS][SI]Q
//	d[SI]/dt = -γ[SI] + τ([SS]-[SI])[SI]Q - τ[SI]
//	dR/dt    = γI
//
// Detail keys: "Sk", "SS", "SI".
func SIRCompactPairwise(ctx context.Context, Sk0 []float64, I0, R0, SS0, SI0, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRCompactPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"I0", "R0", "SS0", "SI0"}, I0, R0, SS0, SI0); err != nil {
		return nil, err
	}
	ks, err := s.degreesOf(method, len(Sk0))
	if err != nil {
		return nil, err
	}

	K := len(ks)
	kk := make([]float64, K)
	for i, k := range ks {
		kk[i] = k * (k - 1)
	}
	N := floats.Sum(Sk0) + I0 + R0

	l, _ := layout.New(layout.Vector("Sk", K), layout.Scalar("SS"), layout.Scalar("SI"), layout.Scalar("R"))
	start, _ := l.Pack(Sk0, []float64{SS0}, []float64{SI0}, []float64{R0})
	rhs := func(_ float64, y, dy []float64) {
		sk, dsk := l.View(y, "Sk"), l.View(dy, "Sk")
		ss, si, r := y[K], y[K+1], y[K+2]
		sx := floats.Dot(ks, sk)
		q := safeDiv(floats.Dot(kk, sk), sx*sx)
		pressure := safeDiv(si, sx)
		for i, k := range ks {
			dsk[i] = -tau * k * sk[i] * pressure
		}
		dy[K] = -2 * tau * ss * si * q
		dy[K+1] = -gamma*si + tau*(ss-si)*si*q - tau*si
		dy[K+2] = gamma * (N - floats.Sum(sk) - r)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "Sk", "SS", "SI")
	res.S = sol.series["Sk"].Totals()
	res.R = sol.series["R"].Scalar()
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.R[r] })

	return res, nil
}

// SISCompactPairwiseFromGraph runs SISCompactPairwise on the degree table
// of g with a fraction ρ (default 1/N) infected and pairs split independently.
func SISCompactPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, rho, err := newSettings(opts...).degreeTable(MethodSISCompactPairwise, g)
	if err != nil {
		return nil, err
	}
	ends := floats.Dot(t.Index.Floats(), t.Nk) // Σ k Nk

	return SISCompactPairwise(ctx, t.Sk0, t.Ik0, (1-rho)*rho*ends, (1-rho)*(1-rho)*ends, rho*rho*ends,
		tau, gamma, extend(opts, WithDegreeIndex(t.Index))...)
}

// SIRCompactPairwiseFromGraph runs SIRCompactPairwise on the degree table
// of g with a fraction ρ (default 1/N) infected.
func SIRCompactPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, rho, err := newSettings(opts...).degreeTable(MethodSIRCompactPairwise, g)
	if err != nil {
		return nil, err
	}
	sx0 := floats.Dot(t.Index.Floats(), t.Sk0)

	return SIRCompactPairwise(ctx, t.Sk0, floats.Sum(t.Ik0), 0, (1-rho)*sx0, rho*sx0,
		tau, gamma, extend(opts, WithDegreeIndex(t.Index))...)
}

// superCompactQ is the SIS closure factor from degree moments. nS is the
// mean number of partners of a susceptible. When the degrees do not vary
// the moment ratio reduces to nS and Q to (nS-1)/(nS S), the regular
// pairwise closure.
func superCompactQ(m degree.Moments, nS, S float64) float64 {
	variance := m.Second - m.Mean*m.Mean
	ratio := nS
	if math.Abs(variance) > 1e-12*m.Second {
		ratio = safeDiv(m.Second*(m.Second-nS*m.Mean)+m.Third*(nS-m.Mean), nS*variance)
	}

	return safeDiv(ratio-1, nS*S)
}

// SISSuperCompactPairwise integrates the four-equation SIS closure driven
// by the degree moments m. With S = N - I and nS = ([SS]+[SI])/S:
//
//	dI/dt    = τ[SI] - γI
//	d[SS]/dt = 2γ[SI] - 2τ[SI][SS]Q
//	d[SI]/dt = γ([II]-[SI]) + τ[SI]([SS]-[SI])Q - τ[SI]
//	d[II]/dt = -2γ[II] + 2τ[SI]²Q + 2τ[SI]
//
// Detail keys: "SS", "SI", "II".
func SISSuperCompactPairwise(ctx context.Context, S0, I0, SS0, SI0, II0 float64, m degree.Moments, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISSuperCompactPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"S0", "I0", "SS0", "SI0", "II0"}, S0, I0, SS0, SI0, II0); err != nil {
		return nil, err
	}
	if err := positiveDegree(method, m.Mean); err != nil {
		return nil, err
	}

	N := S0 + I0
	l, _ := layout.New(layout.Scalar("I"), layout.Scalar("SS"), layout.Scalar("SI"), layout.Scalar("II"))
	rhs := func(_ float64, y, dy []float64) {
		I, SS, SI, II := y[0], y[1], y[2], y[3]
		S := N - I
		q := superCompactQ(m, safeDiv(SS+SI, S), S)
		dy[0] = tau*SI - gamma*I
		dy[1] = 2*gamma*SI - 2*tau*SI*SS*q
		dy[2] = gamma*(II-SI) + tau*SI*(SS-SI)*q - tau*SI
		dy[3] = -2*gamma*II + 2*tau*SI*SI*q + 2*tau*SI
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{I0, SS0, SI0, II0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "SS", "SI", "II")
	res.I = sol.series["I"].Scalar()
	res.S = totals(len(sol.times), func(r int) float64 { return N - res.I[r] })

	return res, nil
}

// SIRSuperCompactPairwise integrates the four-equation SIR closure driven
// by ψ̂, the generating function of initially susceptible vertices
// normalised by N. θ starts at 1; with S = Nψ̂(θ), I = N - S - R and
// Q = ψ̂''(θ)/(Nψ̂'(θ)²):
//
//	dθ/dt    = -τ[SI]/(Nψ̂'(θ))
//	d[SS]/dt = -2τ[SS][SI]Q
//	d[SI]/dt = -γ[SI] + τ([SS]-[SI])[SI]Q - τ[SI]
//	dR/dt    = γI
//
// Detail keys: "theta", "SS", "SI".
func SIRSuperCompactPairwise(ctx context.Context, SS0, SI0, R0, N float64, psihat PGF, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRSuperCompactPairwise
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"SS0", "SI0", "R0", "N"}, SS0, SI0, R0, N); err != nil {
		return nil, err
	}
	if psihat == nil {
		return nil, configErr(method, ErrMissingIC)
	}

	l, _ := layout.New(layout.Scalar("theta"), layout.Scalar("SS"), layout.Scalar("SI"), layout.Scalar("R"))
	rhs := func(_ float64, y, dy []float64) {
		theta, SS, SI, R := y[0], y[1], y[2], y[3]
		prime := psihat.Prime(theta)
		q := safeDiv(psihat.PrimePrime(theta), N*prime*prime)
		dy[0] = -tau * safeDiv(SI, N*prime)
		dy[1] = -2 * tau * SS * SI * q
		dy[2] = -gamma*SI + tau*(SS-SI)*SI*q - tau*SI
		dy[3] = gamma * (N - N*psihat.Psi(theta) - R)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: []float64{1, SS0, SI0, R0}, rhs: rhs})
	if err != nil {
		return nil, err
	}
	thetas := sol.series["theta"].Scalar()
	res := s.result(sol, "theta", "SS", "SI")
	res.R = sol.series["R"].Scalar()
	res.S = totals(len(sol.times), func(r int) float64 { return N * psihat.Psi(thetas[r]) })
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.R[r] })

	return res, nil
}

// SISSuperCompactPairwiseFromGraph runs SISSuperCompactPairwise with the
// degree moments of g, a fraction ρ (default 1/N) infected and pairs split
// independently.
func SISSuperCompactPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISSuperCompactPairwise
	t, rho, err := newSettings(opts...).degreeTable(method, g)
	if err != nil {
		return nil, err
	}
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return nil, configErr(method, err)
	}
	ks := t.Index.Floats()
	ends := floats.Dot(ks, t.Nk)
	sx0 := floats.Dot(ks, t.Sk0)

	return SISSuperCompactPairwise(ctx, floats.Sum(t.Sk0), floats.Sum(t.Ik0),
		(1-rho)*sx0, rho*sx0, ends-sx0-rho*sx0, pk.Moments(), tau, gamma, opts...)
}

// SIRSuperCompactPairwiseFromGraph runs SIRSuperCompactPairwise with
// ψ̂ = (1-ρ)ψ, ψ the degree generating function of g and ρ defaulting to 1/N.
func SIRSuperCompactPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRSuperCompactPairwise
	t, rho, err := newSettings(opts...).degreeTable(method, g)
	if err != nil {
		return nil, err
	}
	pk, err := degree.DistributionOf(g)
	if err != nil {
		return nil, configErr(method, err)
	}
	sx0 := floats.Dot(t.Index.Floats(), t.Sk0)

	return SIRSuperCompactPairwise(ctx, (1-rho)*sx0, rho*sx0, 0, float64(g.Order()),
		pk.GeneratingFunction().Scale(1-rho), tau, gamma, opts...)
}
