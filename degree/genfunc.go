// SPDX-License-Identifier: MIT

package degree

import (
	"math"
	"sort"
)

// GeneratingFunction is ψ(x) = Σ_k w_k x^k over a finite set of non-negative
// degrees. The weights need not sum to one; the attack-rate fixed point uses
// ψ(x) = Σ Pk (Sk0/Nk) x^k.
type GeneratingFunction struct {
	ks []int
	ws []float64
}

// NewGeneratingFunction copies weights keyed by degree. Negative degrees are ignored.
func NewGeneratingFunction(weights map[int]float64) *GeneratingFunction {
	ks := make([]int, 0, len(weights))
	for k := range weights {
		if k >= 0 {
			ks = append(ks, k)
		}
	}
	sort.Ints(ks)
	ws := make([]float64, len(ks))
	for i, k := range ks {
		ws[i] = weights[k]
	}

	return &GeneratingFunction{ks: ks, ws: ws}
}

// Psi returns Σ w_k x^k.
func (f *GeneratingFunction) Psi(x float64) float64 {
	var s float64
	for i, k := range f.ks {
		s += f.ws[i] * math.Pow(x, float64(k))
	}

	return s
}

// Prime returns ψ'(x) = Σ k w_k x^(k-1).
func (f *GeneratingFunction) Prime(x float64) float64 {
	var s float64
	for i, k := range f.ks {
		if k < 1 {
			continue
		}
		s += float64(k) * f.ws[i] * math.Pow(x, float64(k-1))
	}

	return s
}

// PrimePrime returns ψ''(x) = Σ k(k-1) w_k x^(k-2).
func (f *GeneratingFunction) PrimePrime(x float64) float64 {
	var s float64
	for i, k := range f.ks {
		if k < 2 {
			continue
		}
		s += float64(k*(k-1)) * f.ws[i] * math.Pow(x, float64(k-2))
	}

	return s
}

// Scale returns c·ψ.
func (f *GeneratingFunction) Scale(c float64) *GeneratingFunction {
	ws := make([]float64, len(f.ws))
	for i, w := range f.ws {
		ws[i] = c * w
	}

	return &GeneratingFunction{ks: append([]int(nil), f.ks...), ws: ws}
}
