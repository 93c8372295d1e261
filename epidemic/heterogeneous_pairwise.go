// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/degree"
	"github.com/katalvlaran/epinet/layout"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	MethodSISHeterogeneousPairwise = "SISHeterogeneousPairwise"
	MethodSIRHeterogeneousPairwise = "SIRHeterogeneousPairwise"
)

// square flattens a K×K initial condition, rejecting any other shape.
func square(method, name string, m mat.Matrix, K int) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %s: %w", method, name, ErrMissingIC)
	}
	if r, c := m.Dims(); r != K || c != K {
		return nil, fmt.Errorf("%s: %s is %d×%d, want %d×%d: %w", method, name, r, c, K, K, ErrLengthMismatch)
	}

	return layout.Flatten(m), nil
}

// triples holds the closed triple counts of the heterogeneous pairwise
// model over K degree classes, row-major.
type triples struct {
	ks     []float64
	skI    []float64 // [SkI] = Σ_l [SkIl]
	factor []float64 // (k-1)[SkI]/(k Sk)
	sksli  []float64 // [SkSlI] = [SkSl] factor[l]
	iskil  []float64 // [ISkIl] = [SkIl] factor[k]
}

func newTriples(ks []float64) *triples {
	K := len(ks)
	return &triples{ks: ks, skI: make([]float64, K), factor: make([]float64, K), sksli: make([]float64, K*K), iskil: make([]float64, K*K)}
}

// close evaluates the closures at susceptible counts sk and pair counts sksl, skil.
func (t *triples) close(sk, sksl, skil []float64) {
	K := len(t.ks)
	for k := 0; k < K; k++ {
		t.skI[k] = floats.Sum(skil[k*K : (k+1)*K])
		t.factor[k] = safeDiv((t.ks[k]-1)*t.skI[k], t.ks[k]*sk[k])
	}
	for k := 0; k < K; k++ {
		for l := 0; l < K; l++ {
			t.sksli[k*K+l] = sksl[k*K+l] * t.factor[l]
			t.iskil[k*K+l] = skil[k*K+l] * t.factor[k]
		}
	}
}

// SISHeterogeneousPairwise integrates the degree-pair SIS closure. Arrays
// are over the degree index (WithDegreeIndex, default position == degree);
// the pair matrices count ordered edge endpoints, so NkNl = SkSl0 + SkIl0 +
// SkIl0ᵀ + IkIl0. With Ik = Nk - Sk, IkSl = SkIlᵀ and IkIl = NkNl - SkSl -
// SkIl - IkSl:
//
//	dSk/dt   = γIk - τ[SkI]
//	d[SkSl]/dt = γ([SkIl]+[IkSl]) - τ([SkSlI]+[ISkSl])
//	d[SkIl]/dt = γ([IkIl]-[SkIl]) + τ([SkSlI]-[ISkIl]-[SkIl])
//
// The default integrator is the Adams method.
//
// Detail keys: "Sk", "Ik", "SkSl", "SkIl", "IkIl".
func SISHeterogeneousPairwise(ctx context.Context, Sk0, Ik0 []float64, SkSl0, SkIl0, IkIl0 mat.Matrix, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSISHeterogeneousPairwise
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
	sksl0, err := square(method, "SkSl0", SkSl0, K)
	if err != nil {
		return nil, err
	}
	skil0, err := square(method, "SkIl0", SkIl0, K)
	if err != nil {
		return nil, err
	}
	ikil0, err := square(method, "IkIl0", IkIl0, K)
	if err != nil {
		return nil, err
	}

	nk := make([]float64, K)
	for i := range nk {
		nk[i] = Sk0[i] + Ik0[i]
	}
	nknl := make([]float64, K*K)
	for k := 0; k < K; k++ {
		for l := 0; l < K; l++ {
			nknl[k*K+l] = sksl0[k*K+l] + skil0[k*K+l] + skil0[l*K+k] + ikil0[k*K+l]
		}
	}

	l, _ := layout.New(layout.Vector("Sk", K), layout.Matrix("SkSl", K, K), layout.Matrix("SkIl", K, K))
	start, _ := l.Pack(Sk0, sksl0, skil0)
	tr := newTriples(ks)
	rhs := func(_ float64, y, dy []float64) {
		sk, sksl, skil := l.View(y, "Sk"), l.View(y, "SkSl"), l.View(y, "SkIl")
		dsk, dsksl, dskil := l.View(dy, "Sk"), l.View(dy, "SkSl"), l.View(dy, "SkIl")
		tr.close(sk, sksl, skil)
		for k := 0; k < K; k++ {
			dsk[k] = gamma*(nk[k]-sk[k]) - tau*tr.skI[k]
			for m := 0; m < K; m++ {
				kl, lk := k*K+m, m*K+k
				iksl := skil[lk]
				ikil := nknl[kl] - sksl[kl] - skil[kl] - iksl
				dsksl[kl] = gamma*(skil[kl]+iksl) - tau*(tr.sksli[kl]+tr.sksli[lk])
				dskil[kl] = gamma*(ikil-skil[kl]) + tau*(tr.sksli[kl]-tr.iskil[kl]-skil[kl])
			}
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs, multistep: true})
	if err != nil {
		return nil, err
	}
	T := len(sol.times)
	skS := sol.series["Sk"]
	ikS := derive("Ik", K, 1, T, func(r int, out []float64) {
		sk := skS.At(r)
		for i := range out {
			out[i] = nk[i] - sk[i]
		}
	})
	res := s.result(sol, "Sk", "SkSl", "SkIl")
	res.S = skS.Totals()
	res.I = ikS.Totals()
	if s.fullData {
		res.Detail["Ik"] = ikS
		ssS, siS := sol.series["SkSl"], sol.series["SkIl"]
		res.Detail["IkIl"] = derive("IkIl", K, K, T, func(r int, out []float64) {
			ss, si := ssS.At(r), siS.At(r)
			for k := 0; k < K; k++ {
				for m := 0; m < K; m++ {
					out[k*K+m] = nknl[k*K+m] - ss[k*K+m] - si[k*K+m] - si[m*K+k]
				}
			}
		})
	}

	return res, nil
}

// SIRHeterogeneousPairwise integrates the degree-pair SIR closure:
//
//	dSk/dt   = -τ[SkI]
//	dIk/dt   = τ[SkI] - γIk
//	d[SkSl]/dt = -τ([SkSlI]+[ISkSl])
//	d[SkIl]/dt = -γ[SkIl] + τ([SkSlI]-[ISkIl]-[SkIl])
//
// The default integrator is the Adams method.
//
// Detail keys: "Sk", "Ik", "Rk", "SkSl", "SkIl".
func SIRHeterogeneousPairwise(ctx context.Context, Sk0, Ik0, Rk0 []float64, SkSl0, SkIl0 mat.Matrix, tau, gamma float64, opts ...Option) (*Result, error) {
	const method = MethodSIRHeterogeneousPairwise
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
	sksl0, err := square(method, "SkSl0", SkSl0, K)
	if err != nil {
		return nil, err
	}
	skil0, err := square(method, "SkIl0", SkIl0, K)
	if err != nil {
		return nil, err
	}

	nk := make([]float64, K)
	for i := range nk {
		nk[i] = Sk0[i] + Ik0[i] + Rk0[i]
	}

	l, _ := layout.New(layout.Vector("Sk", K), layout.Vector("Ik", K),
		layout.Matrix("SkSl", K, K), layout.Matrix("SkIl", K, K))
	start, _ := l.Pack(Sk0, Ik0, sksl0, skil0)
	tr := newTriples(ks)
	rhs := func(_ float64, y, dy []float64) {
		sk, ik := l.View(y, "Sk"), l.View(y, "Ik")
		sksl, skil := l.View(y, "SkSl"), l.View(y, "SkIl")
		dsk, dik := l.View(dy, "Sk"), l.View(dy, "Ik")
		dsksl, dskil := l.View(dy, "SkSl"), l.View(dy, "SkIl")
		tr.close(sk, sksl, skil)
		for k := 0; k < K; k++ {
			dsk[k] = -tau * tr.skI[k]
			dik[k] = tau*tr.skI[k] - gamma*ik[k]
			for m := 0; m < K; m++ {
				kl, lk := k*K+m, m*K+k
				dsksl[kl] = -tau * (tr.sksli[kl] + tr.sksli[lk])
				dskil[kl] = -gamma*skil[kl] + tau*(tr.sksli[kl]-tr.iskil[kl]-skil[kl])
			}
		}
	}

	sol, err := s.solve(ctx, system{method: method, layout: l, y0: start, rhs: rhs, multistep: true})
	if err != nil {
		return nil, err
	}
	T := len(sol.times)
	skS, ikS := sol.series["Sk"], sol.series["Ik"]
	rkS := derive("Rk", K, 1, T, func(r int, out []float64) {
		sk, ik := skS.At(r), ikS.At(r)
		for i := range out {
			out[i] = nk[i] - sk[i] - ik[i]
		}
	})
	res := s.result(sol, "Sk", "Ik", "SkSl", "SkIl")
	res.S = skS.Totals()
	res.I = ikS.Totals()
	res.R = rkS.Totals()
	if s.fullData {
		res.Detail["Rk"] = rkS
	}

	return res, nil
}

// pairStart tabulates g over its observed degrees with ρ defaulting to 1/N.
func (s *settings) pairStart(method string, g core.Network) (*degree.PairTable, []float64, float64, error) {
	rho, err := s.graphRho(method, g)
	if err != nil {
		return nil, nil, 0, err
	}
	pt, err := degree.TabulatePairs(g, rho, true)
	if err != nil {
		return nil, nil, 0, configErr(method, err)
	}
	nk, err := pt.Counts(g)
	if err != nil {
		return nil, nil, 0, configErr(method, err)
	}

	return pt, nk, rho, nil
}

func split(nk []float64, frac float64) []float64 {
	out := make([]float64, len(nk))
	for i, n := range nk {
		out[i] = frac * n
	}

	return out
}

// SISHeterogeneousPairwiseFromGraph runs SISHeterogeneousPairwise over the
// observed degrees of g with a fraction ρ (default 1/N) infected.
func SISHeterogeneousPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	pt, nk, rho, err := newSettings(opts...).pairStart(MethodSISHeterogeneousPairwise, g)
	if err != nil {
		return nil, err
	}

	return SISHeterogeneousPairwise(ctx, split(nk, 1-rho), split(nk, rho), pt.SkSl0, pt.SkIl0, pt.IkIl0,
		tau, gamma, extend(opts, WithDegreeIndex(pt.Index))...)
}

// SIRHeterogeneousPairwiseFromGraph runs SIRHeterogeneousPairwise over the
// observed degrees of g with a fraction ρ (default 1/N) infected.
func SIRHeterogeneousPairwiseFromGraph(ctx context.Context, g core.Network, tau, gamma float64, opts ...Option) (*Result, error) {
	pt, nk, rho, err := newSettings(opts...).pairStart(MethodSIRHeterogeneousPairwise, g)
	if err != nil {
		return nil, err
	}

	return SIRHeterogeneousPairwise(ctx, split(nk, 1-rho), split(nk, rho), split(nk, 0), pt.SkSl0, pt.SkIl0,
		tau, gamma, extend(opts, WithDegreeIndex(pt.Index))...)
}
