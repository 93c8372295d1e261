// SPDX-License-Identifier: MIT

package degree

import (
	"fmt"

	"github.com/katalvlaran/epinet/core"
	"gonum.org/v1/gonum/mat"
)

// Table holds per-degree vertex counts and the matching uniform initial condition.
// Arrays are indexed by Index (dense, 0..kmax).
type Table struct {
	Index *Index
	Nk    []float64
	Sk0   []float64
	Ik0   []float64
	Rk0   []float64
}

// PairTable holds per-degree-pair edge-endpoint counts and their initial
// partition into susceptible/infected pairs. All matrices are Index.Len()
// square and symmetric.
type PairTable struct {
	Index *Index
	NkNl  *mat.Dense
	SkSl0 *mat.Dense
	SkIl0 *mat.Dense
	IkIl0 *mat.Dense
}

// Degrees returns the degree of every vertex of g keyed by vertex ID.
func Degrees(g core.Network) (map[string]int, error) {
	out := make(map[string]int, g.Order())
	for _, v := range g.Vertices() {
		d, err := g.Degree(v)
		if err != nil {
			return nil, fmt.Errorf("Degrees: %s: %w", v, err)
		}
		out[v] = d
	}

	return out, nil
}

// Tabulate counts vertices per degree and splits each count into a
// susceptible share (1-rho) and an infected share rho.
//
// Errors:
//   - ErrEmptyNetwork if g has no vertices.
//   - ErrBadFraction if rho is outside [0,1].
//
// Complexity: O(V).
func Tabulate(g core.Network, rho float64) (*Table, error) {
	const method = "Tabulate"
	if err := checkFraction(method, rho); err != nil {
		return nil, err
	}
	degs, err := Degrees(g)
	if err != nil {
		return nil, err
	}
	if len(degs) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyNetwork)
	}

	maxK := 0
	for _, k := range degs {
		if k > maxK {
			maxK = k
		}
	}
	ix := Dense(maxK)
	t := &Table{
		Index: ix,
		Nk:    make([]float64, ix.Len()),
		Sk0:   make([]float64, ix.Len()),
		Ik0:   make([]float64, ix.Len()),
		Rk0:   make([]float64, ix.Len()),
	}
	for _, k := range degs {
		t.Nk[k]++
	}
	for k, n := range t.Nk {
		t.Sk0[k] = (1 - rho) * n
		t.Ik0[k] = rho * n
	}

	return t, nil
}

// TabulatePairs counts edge endpoints per ordered degree pair: every edge
// (u,v) adds one to NkNl[deg u, deg v] and one to NkNl[deg v, deg u].
// With observed set, positions follow the distinct observed degrees instead
// of the dense range.
//
// Complexity: O(V + E + K²).
func TabulatePairs(g core.Network, rho float64, observed bool) (*PairTable, error) {
	const method = "TabulatePairs"
	if err := checkFraction(method, rho); err != nil {
		return nil, err
	}
	degs, err := Degrees(g)
	if err != nil {
		return nil, err
	}
	if len(degs) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyNetwork)
	}

	ks := make([]int, 0, len(degs))
	maxK := 0
	for _, k := range degs {
		ks = append(ks, k)
		if k > maxK {
			maxK = k
		}
	}
	ix := Dense(maxK)
	if observed {
		ix = Observed(ks)
	}

	n := ix.Len()
	nkl := mat.NewDense(n, n, nil)
	for _, e := range g.EdgePairs() {
		i, err := ix.Position(degs[e[0]])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		j, err := ix.Position(degs[e[1]])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		nkl.Set(i, j, nkl.At(i, j)+1)
		nkl.Set(j, i, nkl.At(j, i)+1)
	}

	pt := &PairTable{Index: ix, NkNl: nkl}
	pt.SkSl0 = scaled((1-rho)*(1-rho), nkl)
	pt.SkIl0 = scaled((1-rho)*rho, nkl)
	pt.IkIl0 = scaled(rho*rho, nkl)

	return pt, nil
}

// Counts returns Nk over pt.Index recovered from the pair counts of g.
func (pt *PairTable) Counts(g core.Network) ([]float64, error) {
	degs, err := Degrees(g)
	if err != nil {
		return nil, err
	}
	nk := make([]float64, pt.Index.Len())
	for _, k := range degs {
		i, err := pt.Index.Position(k)
		if err != nil {
			return nil, fmt.Errorf("Counts: %w", err)
		}
		nk[i]++
	}

	return nk, nil
}

func scaled(c float64, m *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Scale(c, m)

	return &out
}

func checkFraction(method string, rho float64) error {
	if rho < 0 || rho > 1 {
		return fmt.Errorf("%s: rho=%g: %w", method, rho, ErrBadFraction)
	}

	return nil
}
