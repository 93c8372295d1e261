// SPDX-License-Identifier: MIT

package degree

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/epinet/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution is Pk: the fraction of vertices with degree k.
type Distribution map[int]float64

// Moments are the first three raw moments of a Distribution.
type Moments struct {
	Mean   float64 // ⟨k⟩
	Second float64 // ⟨k²⟩
	Third  float64 // ⟨k³⟩
}

// DistributionOf returns the empirical degree distribution of g.
func DistributionOf(g core.Network) (Distribution, error) {
	degs, err := Degrees(g)
	if err != nil {
		return nil, err
	}
	if len(degs) == 0 {
		return nil, fmt.Errorf("DistributionOf: %w", ErrEmptyNetwork)
	}
	pk := make(Distribution)
	inc := 1 / float64(len(degs))
	for _, k := range degs {
		pk[k] += inc
	}

	return pk, nil
}

// Degrees returns the degrees carrying an entry, ascending.
func (pk Distribution) Degrees() []int {
	ks := make([]int, 0, len(pk))
	for k := range pk {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	return ks
}

// Total returns Σ Pk.
func (pk Distribution) Total() float64 {
	_, ws := pk.columns()
	return floats.Sum(ws)
}

// Mean returns ⟨k⟩ with Pk as weights.
func (pk Distribution) Mean() float64 {
	ks, ws := pk.columns()
	if len(ks) == 0 || floats.Sum(ws) == 0 {
		return 0
	}
	// stat.Mean normalises by the weight total, Σ Pk k need not.
	return stat.Mean(ks, ws) * floats.Sum(ws)
}

// Moment returns Σ Pk k^n.
func (pk Distribution) Moment(n int) float64 {
	ks, ws := pk.columns()
	pow := make([]float64, len(ks))
	for i, k := range ks {
		pow[i] = math.Pow(k, float64(n))
	}

	return floats.Dot(pow, ws)
}

// Moments returns ⟨k⟩, ⟨k²⟩ and ⟨k³⟩ in one pass.
func (pk Distribution) Moments() Moments {
	return Moments{Mean: pk.Mean(), Second: pk.Moment(2), Third: pk.Moment(3)}
}

// Dense returns Pk laid out over Dense(max degree).
func (pk Distribution) Dense() []float64 {
	maxK := -1
	for k := range pk {
		if k > maxK {
			maxK = k
		}
	}
	out := make([]float64, maxK+1)
	for k, p := range pk {
		if k >= 0 {
			out[k] = p
		}
	}

	return out
}

// GeneratingFunction returns ψ(x) = Σ Pk x^k.
func (pk Distribution) GeneratingFunction() *GeneratingFunction {
	return NewGeneratingFunction(pk)
}

func (pk Distribution) columns() (ks, ws []float64) {
	deg := pk.Degrees()
	ks = make([]float64, len(deg))
	ws = make([]float64, len(deg))
	for i, k := range deg {
		ks[i] = float64(k)
		ws[i] = pk[k]
	}

	return ks, ws
}
