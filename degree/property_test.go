// SPDX-License-Identifier: MIT

package degree_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epinet/degree"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestIndex_RoundTrip checks Position∘Degree is the identity on every index.
func TestIndex_RoundTrip(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("observed index round-trips", prop.ForAll(
		func(ks []int) bool {
			ix := degree.Observed(ks)
			for i := 0; i < ix.Len(); i++ {
				p, err := ix.Position(ix.Degree(i))
				if err != nil || p != i {
					return false
				}
			}
			for _, k := range ks {
				if _, err := ix.Position(k); err != nil {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.Property("generating function at one equals total weight", prop.ForAll(
		func(ws []float64) bool {
			m := make(map[int]float64, len(ws))
			var total float64
			for k, w := range ws {
				m[k] = w
				total += w
			}
			return math.Abs(degree.NewGeneratingFunction(m).Psi(1)-total) < 1e-9
		},
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.TestingRun(t)
}
