// SPDX-License-Identifier: MIT

package degree

import (
	"fmt"
	"sort"
)

// Index maps raw degree values to compact array positions and back.
// An Index is immutable once built.
type Index struct {
	degrees []int       // position → degree, ascending
	pos     map[int]int // degree → position
	dense   bool
}

// Dense returns the Index over 0..maxK where position == degree.
// A negative maxK yields an empty index.
func Dense(maxK int) *Index {
	if maxK < 0 {
		maxK = -1
	}
	ks := make([]int, maxK+1)
	for k := range ks {
		ks[k] = k
	}

	return newIndex(ks, true)
}

// Observed returns the Index over the distinct values of ks in ascending order.
func Observed(ks []int) *Index {
	set := make(map[int]struct{}, len(ks))
	for _, k := range ks {
		set[k] = struct{}{}
	}
	uniq := make([]int, 0, len(set))
	for k := range set {
		uniq = append(uniq, k)
	}
	sort.Ints(uniq)

	return newIndex(uniq, false)
}

func newIndex(ks []int, dense bool) *Index {
	pos := make(map[int]int, len(ks))
	for i, k := range ks {
		pos[k] = i
	}

	return &Index{degrees: ks, pos: pos, dense: dense}
}

// Len returns the number of positions.
func (ix *Index) Len() int { return len(ix.degrees) }

// IsDense reports whether position and degree coincide.
func (ix *Index) IsDense() bool { return ix.dense }

// Degree returns the degree stored at position i.
func (ix *Index) Degree(i int) int { return ix.degrees[i] }

// Max returns the largest indexed degree, or -1 for an empty index.
func (ix *Index) Max() int {
	if len(ix.degrees) == 0 {
		return -1
	}
	return ix.degrees[len(ix.degrees)-1]
}

// Position returns the array position of degree k.
func (ix *Index) Position(k int) (int, error) {
	i, ok := ix.pos[k]
	if !ok {
		return 0, fmt.Errorf("Position: k=%d: %w", k, ErrUnobservedDegree)
	}

	return i, nil
}

// Degrees returns a copy of the indexed degree values.
func (ix *Index) Degrees() []int {
	return append([]int(nil), ix.degrees...)
}

// Floats returns the indexed degree values as float64, ready for vector arithmetic.
func (ix *Index) Floats() []float64 {
	out := make([]float64, len(ix.degrees))
	for i, k := range ix.degrees {
		out[i] = float64(k)
	}

	return out
}
