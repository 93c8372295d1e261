// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/layout"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

const (
	MethodSISEffectiveDegree        = "SISEffectiveDegree"
	MethodSIREffectiveDegree        = "SIREffectiveDegree"
	MethodSISCompactEffectiveDegree = "SISCompactEffectiveDegree"
	MethodSIRCompactEffectiveDegree = "SIRCompactEffectiveDegree"
)

// lattice is a row-major (s,i) grid where out-of-range cells read as zero.
type lattice struct {
	rows, cols int
}

func (g lattice) at(v []float64, s, i int) float64 {
	if s < 0 || i < 0 || s >= g.rows || i >= g.cols {
		return 0
	}
	return v[s*g.cols+i]
}

// moment returns Σ w(s,i) v[s,i].
func (g lattice) moment(v []float64, w func(s, i float64) float64) float64 {
	var sum float64
	for s := 0; s < g.rows; s++ {
		for i := 0; i < g.cols; i++ {
			sum += w(float64(s), float64(i)) * v[s*g.cols+i]
		}
	}

	return sum
}

func gridOf(method, name string, m mat.Matrix) (lattice, []float64, error) {
	if m == nil {
		return lattice{}, nil, fmt.Errorf("%s: %s: %w", method, name, ErrMissingIC)
	}
	r, c := m.Dims()

	return lattice{rows: r, cols: c}, layout.Flatten(m), nil
}

// SISEffectiveDegree integrates the SIS effective-degree model. Ssi0[s,i]
// and Isi0[s,i] count susceptible and infected vertices with s susceptible
// and i infected partners. Cells beyond the grid contribute nothing:
//
//	dSsi = -τ i Ssi + γ Isi + γ((i+1)S[s-1,i+1] - i Ssi) + τ(ISS/SS)((s+1)S[s+1,i-1] - s Ssi)
//	dIsi =  τ i Ssi - γ Isi + γ((i+1)I[s-1,i+1] - i Isi) + τ(ISI/SI+1)((s+1)I[s+1,i-1] - s Isi)
//
// where ISS = Σ i s Ssi, SS = Σ s Ssi, ISI = Σ i(i-1) Ssi and SI = Σ i Ssi.
//
// Detail keys: "Ssi", "Isi".
func SISEffectiveDegree(ctx context.Context, Ssi0, Isi0 mat.Matrix, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISEffectiveDegree
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	grid, ssi0, err := gridOf(method, "Ssi0", Ssi0)
	if err != nil {
		return nil, err
	}
	igrid, isi0, err := gridOf(method, "Isi0", Isi0)
	if err != nil {
		return nil, err
	}
	if igrid != grid {
		return nil, fmt.Errorf("%s: Ssi0 is %d×%d, Isi0 is %d×%d: %w", method, grid.rows, grid.cols, igrid.rows, igrid.cols, ErrLengthMismatch)
	}

	l, _ := layout.New(layout.Matrix("Ssi", grid.rows, grid.cols), layout.Matrix("Isi", grid.rows, grid.cols))
	start, _ := l.Pack(ssi0, isi0)
	rhs := func(_ float64, y, dy []float64) {
		S, I := l.View(y, "Ssi"), l.View(y, "Isi")
		dS, dI := l.View(dy, "Ssi"), l.View(dy, "Isi")
		ISS := grid.moment(S, func(s, i float64) float64 { return i * s })
		SS := grid.moment(S, func(s, _ float64) float64 { return s })
		ISI := grid.moment(S, func(_, i float64) float64 { return i * (i - 1) })
		SI := grid.moment(S, func(_, i float64) float64 { return i })
		toS := tau * safeDiv(ISS, SS)
		toI := tau * (safeDiv(ISI, SI) + 1)
		for s := 0; s < grid.rows; s++ {
			for i := 0; i < grid.cols; i++ {
				c := s*grid.cols + i
				fs, fi := float64(s), float64(i)
				dS[c] = -tau*fi*S[c] + gamma*I[c] +
					gamma*((fi+1)*grid.at(S, s-1, i+1)-fi*S[c]) +
					toS*((fs+1)*grid.at(S, s+1, i-1)-fs*S[c])
				dI[c] = tau*fi*S[c] - gamma*I[c] +
					gamma*((fi+1)*grid.at(I, s-1, i+1)-fi*I[c]) +
					toI*((fs+1)*grid.at(I, s+1, i-1)-fs*I[c])
			}
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "Ssi", "Isi")
	res.S = sol.series["Ssi"].Totals()
	res.I = sol.series["Isi"].Totals()

	return res, nil
}

// SIREffectiveDegree integrates the SIR effective-degree model over the
// susceptible grid Ssi0 and the recovered total. Cells beyond the grid
// contribute nothing:
//
//	dSsi = -τ i Ssi + γ((i+1)S[s,i+1] - i Ssi) + τ(ISS/SS)((s+1)S[s+1,i-1] - s Ssi)
//	dR   = γ(N - ΣSsi - R)
//
// Detail keys: "Ssi".
func SIREffectiveDegree(ctx context.Context, Ssi0 mat.Matrix, I0, R0, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIREffectiveDegree
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"I0", "R0"}, I0, R0); err != nil {
		return nil, err
	}
	grid, ssi0, err := gridOf(method, "Ssi0", Ssi0)
	if err != nil {
		return nil, err
	}
	N := floats.Sum(ssi0) + I0 + R0

	l, _ := layout.New(layout.Matrix("Ssi", grid.rows, grid.cols), layout.Scalar("R"))
	start, _ := l.Pack(ssi0, []float64{R0})
	rhs := func(_ float64, y, dy []float64) {
		S, dS := l.View(y, "Ssi"), l.View(dy, "Ssi")
		R := y[len(y)-1]
		ISS := grid.moment(S, func(s, i float64) float64 { return i * s })
		SS := grid.moment(S, func(s, _ float64) float64 { return s })
		toS := tau * safeDiv(ISS, SS)
		for s := 0; s < grid.rows; s++ {
			for i := 0; i < grid.cols; i++ {
				c := s*grid.cols + i
				fs, fi := float64(s), float64(i)
				dS[c] = -tau*fi*S[c] +
					gamma*((fi+1)*grid.at(S, s, i+1)-fi*S[c]) +
					toS*((fs+1)*grid.at(S, s+1, i-1)-fs*S[c])
			}
		}
		dy[len(dy)-1] = gamma * (N - floats.Sum(S) - R)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "Ssi")
	res.S = sol.series["Ssi"].Totals()
	res.R = sol.series["R"].Scalar()
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.R[r] })

	return res, nil
}

// spreadByPartners splits each degree class of xk over (s,i): a vertex of
// degree s+i has i infected partners with binomial probability in rho.
func spreadByPartners(xk []float64, rho float64) *mat.Dense {
	K := len(xk)
	out := mat.NewDense(K, K, nil)
	for s := 0; s < K; s++ {
		for i := 0; i < K-s; i++ {
			p := combin.GeneralizedBinomial(float64(s+i), float64(i)) * math.Pow(rho, float64(i)) * math.Pow(1-rho, float64(s))
			out.Set(s, i, xk[s+i]*p)
		}
	}

	return out
}

// SISEffectiveDegreeFromGraph runs SISEffectiveDegree from the degree table
// of g with a fraction ρ (default 1/N) infected independently of degree.
func SISEffectiveDegreeFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, rho, err := newSettings(opts...).degreeTable(MethodSISEffectiveDegree, g)
	if err != nil {
		return nil, err
	}

	return SISEffectiveDegree(ctx, spreadByPartners(t.Sk0, rho), spreadByPartners(t.Ik0, rho), tau, gamma, opts...)
}

// SIREffectiveDegreeFromGraph runs SIREffectiveDegree from the degree table
// of g with a fraction ρ (default 1/N) infected independently of degree.
func SIREffectiveDegreeFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, rho, err := newSettings(opts...).degreeTable(MethodSIREffectiveDegree, g)
	if err != nil {
		return nil, err
	}

	return SIREffectiveDegree(ctx, spreadByPartners(t.Sk0, rho), floats.Sum(t.Ik0), floats.Sum(t.Rk0), tau, gamma, opts...)
}

// SISCompactEffectiveDegree is the SIS compact effective-degree model,
// which coincides with SISCompactPairwise.
func SISCompactEffectiveDegree(ctx context.Context, Sk0, Ik0 []float64, SI0, SS0, II0, tau, gamma float64, opts ...Option) (*Result, error) {
	return SISCompactPairwise(ctx, Sk0, Ik0, SI0, SS0, II0, tau, gamma, opts...)
}

// SISCompactEffectiveDegreeFromGraph is SISCompactPairwiseFromGraph.
func SISCompactEffectiveDegreeFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	return SISCompactPairwiseFromGraph(ctx, g, tau, gamma, opts...)
}

// SIRCompactEffectiveDegree integrates the SIR compact effective-degree
// model. Sκ counts susceptible vertices with κ partners that have not
// transmitted to them; κ runs over 0..len(Skappa0)-1. With
// effI = [SI]/Σ κ Sκ:
//
//	dSκ/dt   = effI(-(τ+γ)κ Sκ + γ(κ+1)S(κ+1))
//	d[SI]/dt = -(τ+γ)[SI] + τ(effI - 2effI²) Σ κ(κ-1)Sκ
//	dR/dt    = γ(N - R - ΣSκ)
//
// Detail keys: "Skappa", "SI".
func SIRCompactEffectiveDegree(ctx context.Context, Skappa0 []float64, I0, R0, SI0, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRCompactEffectiveDegree
	s := newSettings(opts...)
	if err := s.validate(method, tau, gamma); err != nil {
		return nil, err
	}
	if err := nonNegative(method, []string{"I0", "R0", "SI0"}, I0, R0, SI0); err != nil {
		return nil, err
	}

	K := len(Skappa0)
	kappas := make([]float64, K)
	kk := make([]float64, K)
	for i := range kappas {
		kappas[i] = float64(i)
		kk[i] = float64(i * (i - 1))
	}
	N := floats.Sum(Skappa0) + I0 + R0

	l, _ := layout.New(layout.Vector("Skappa", K), layout.Scalar("R"), layout.Scalar("SI"))
	start, _ := l.Pack(Skappa0, []float64{R0}, []float64{SI0})
	rhs := func(_ float64, y, dy []float64) {
		sk, dsk := l.View(y, "Skappa"), l.View(dy, "Skappa")
		R, SI := y[K], y[K+1]
		effI := safeDiv(SI, floats.Dot(kappas, sk))
		for i := range sk {
			var up float64
			if i+1 < K {
				up = kappas[i+1] * sk[i+1]
			}
			dsk[i] = effI * (-(tau+gamma)*kappas[i]*sk[i] + gamma*up)
		}
		dy[K] = gamma * (N - R - floats.Sum(sk))
		dy[K+1] = -(tau+gamma)*SI + tau*(effI-2*effI*effI)*floats.Dot(kk, sk)
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs})
	if err != nil {
		return nil, err
	}
	res := s.result(sol, "Skappa", "SI")
	res.S = sol.series["Skappa"].Totals()
	res.R = sol.series["R"].Scalar()
	res.I = totals(len(sol.times), func(r int) float64 { return N - res.S[r] - res.R[r] })

	return res, nil
}

// SIRCompactEffectiveDegreeFromGraph runs SIRCompactEffectiveDegree with
// Sκ(0) = Sk(0) of g, a fraction ρ (default 1/N) infected and
// [SI](0) = ρ Σ k Sk(0).
func SIRCompactEffectiveDegreeFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	t, rho, err := newSettings(opts...).degreeTable(MethodSIRCompactEffectiveDegree, g)
	if err != nil {
		return nil, err
	}
	N := floats.Sum(t.Nk)
	SI0 := rho * floats.Dot(t.Index.Floats(), t.Sk0)

	return SIRCompactEffectiveDegree(ctx, t.Sk0, N*rho, 0, SI0, tau, gamma, opts...)
}
