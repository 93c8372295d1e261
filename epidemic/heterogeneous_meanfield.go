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
	MethodSISHeterogeneousMeanfield = "SISHeterogeneousMeanfield"
	MethodSIRHeterogeneousMeanfield = "SIRHeterogeneousMeanfield"
)

// SISHeterogeneousMeanfield integrates the degree-class SIS meanfield model.
// Sk0[i] and Ik0[i] are the susceptible and infected counts at position i
// of the degree index (WithDegreeIndex, default position == degree):
//
//	πI = Σ k Ik / Σ k (Sk + Ik)
//	dSk/dt = γIk - τ k Sk πI,  dIk/dt = -dSk/dt
//
// Detail keys: "Sk", "Ik".
func SISHeterogeneousMeanfield(ctx context.Context, Sk0, Ik0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISHeterogeneousMeanfield
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := degree.CheckLengths(method, Sk0, Ik0); err != nil {
		return nil, configErr(method, err)
	}
	ks, err := s.degreesOf(method, len(Sk0))
	if err != nil {
		return nil, err
	}

	K := len(ks)
	l, _ := layout.New(layout.Vector("Sk", K), layout.Vector("Ik", K))
	start, _ := l.Pack(Sk0, Ik0)
	nk := make([]float64, K)
	rhs := func(_ float64, y, dy []float64) {
		sk, ik := l.View(y, "Sk"), l.View(y, "Ik")
		dsk, dik := l.View(dy, "Sk"), l.View(dy, "Ik")
		floats.AddTo(nk, sk, ik)
		piI := safeDiv(floats.Dot(ks, ik), floats.Dot(ks, nk))
		for i, k := range ks {
			dsk[i] = gamma*ik[i] - tau*k*sk[i]*piI
			dik[i] = -dsk[i]
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "Sk", "Ik")
	res.S = sol.series["Sk"].Totals()
	res.I = sol.series["Ik"].Totals()

	return res, nil
}

// SIRHeterogeneousMeanfield integrates the degree-class SIR meanfield model
// in its θ form, θ being the probability a partner has not transmitted:
//
//	Sk = Sk0 θ^k,  Ik = Nk - Sk - Rk,  πI = Σ k Ik / Σ k Nk
//	dθ/dt = -τ πI θ,  dRk/dt = γ Ik,  θ(0) = 1
//
// Detail keys: "theta", "Sk", "Ik", "Rk".
func SIRHeterogeneousMeanfield(ctx context.Context, Sk0, Ik0, Rk0 []float64, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRHeterogeneousMeanfield
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := degree.CheckLengths(method, Sk0, Ik0, Rk0); err != nil {
		return nil, configErr(method, err)
	}
	ks, err := s.degreesOf(method, len(Sk0))
	if err != nil {
		return nil, err
	}

	K := len(ks)
	nk := make([]float64, K)
	floats.AddTo(nk, Sk0, Ik0)
	floats.Add(nk, Rk0)
	kN := floats.Dot(ks, nk)
	sk := func(theta float64, out []float64) {
		for i, k := range ks {
			out[i] = Sk0[i] * math.Pow(theta, k)
		}
	}

	l, _ := layout.New(layout.Scalar("theta"), layout.Vector("Rk", K))
	start, _ := l.Pack([]float64{1}, Rk0)
	sBuf, iBuf := make([]float64, K), make([]float64, K)
	rhs := func(_ float64, y, dy []float64) {
		theta := y[0]
		rk, drk := l.View(y, "Rk"), l.View(dy, "Rk")
		sk(theta, sBuf)
		for i := range iBuf {
			iBuf[i] = nk[i] - sBuf[i] - rk[i]
			drk[i] = gamma * iBuf[i]
		}
		dy[0] = -tau * safeDiv(floats.Dot(ks, iBuf), kN) * theta
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	T := len(sol.times)
	thetas, rks := sol.series["theta"].Scalar(), sol.series["Rk"]
	skS := derive("Sk", K, 1, T, func(r int, out []float64) { sk(thetas[r], out) })
	ikS := derive("Ik", K, 1, T, func(r int, out []float64) {
		rk := rks.At(r)
		sk(thetas[r], out)
		for i := range out {
			out[i] = nk[i] - out[i] - rk[i]
		}
	})

	res := s.result(sol, "theta", "Rk")
	res.S = skS.Totals()
	res.I = ikS.Totals()
	res.R = rks.Totals()
	if s.fullData {
		res.Detail["Sk"] = skS
		res.Detail["Ik"] = ikS
	}

	return res, nil
}

// SISHeterogeneousMeanfieldFromGraph tabulates g by degree with a fraction
// ρ (default 1/N) of every class infected and runs SISHeterogeneousMeanfield.
func SISHeterogeneousMeanfieldFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, _, err := newSettings(opts...).degreeTable(MethodSISHeterogeneousMeanfield, g)
	if err != nil {
		return nil, err
	}

	return SISHeterogeneousMeanfield(ctx, t.Sk0, t.Ik0, tau, gamma, extend(opts, WithDegreeIndex(t.Index))...)
}

// SIRHeterogeneousMeanfieldFromGraph tabulates g by degree with a fraction
// ρ (default 1/N) of every class infected and runs SIRHeterogeneousMeanfield.
func SIRHeterogeneousMeanfieldFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, _, err := newSettings(opts...).degreeTable(MethodSIRHeterogeneousMeanfield, g)
	if err != nil {
		return nil, err
	}

	return SIRHeterogeneousMeanfield(ctx, t.Sk0, t.Ik0, t.Rk0, tau, gamma, extend(opts, WithDegreeIndex(t.Index))...)
}

// degreeTable tabulates g over the dense degree index with ρ defaulting to 1/N.
func (s *settings) degreeTable(method string, g core.Network) (*degree.Table, float64, error) {
	rho, err := s.graphRho(method, g)
	if err != nil {
		return nil, 0, err
	}
	t, err := degree.Tabulate(g, rho)
	if err != nil {
		return nil, 0, configErr(method, err)
	}

	return t, rho, nil
}
