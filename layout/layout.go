// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Section is one named block of the flat state.
type Section struct {
	Name string
	Rows int
	Cols int
}

// Size returns Rows·Cols.
func (s Section) Size() int { return s.Rows * s.Cols }

// Scalar returns a 1×1 section.
func Scalar(name string) Section { return Section{Name: name, Rows: 1, Cols: 1} }

// Vector returns an n×1 section.
func Vector(name string, n int) Section { return Section{Name: name, Rows: n, Cols: 1} }

// Matrix returns an r×c section.
func Matrix(name string, r, c int) Section { return Section{Name: name, Rows: r, Cols: c} }

// Layout is an immutable ordered list of sections.
type Layout struct {
	sections []Section
	offsets  []int
	byName   map[string]int
	size     int
}

// New validates sections and computes their offsets.
func New(sections ...Section) (*Layout, error) {
	l := &Layout{
		sections: append([]Section(nil), sections...),
		offsets:  make([]int, len(sections)),
		byName:   make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		if s.Name == "" || s.Rows < 0 || s.Cols < 0 {
			return nil, fmt.Errorf("layout.New: section %d %+v: %w", i, s, ErrBadSection)
		}
		if _, dup := l.byName[s.Name]; dup {
			return nil, fmt.Errorf("layout.New: %q: %w", s.Name, ErrDuplicateSection)
		}
		l.byName[s.Name] = i
		l.offsets[i] = l.size
		l.size += s.Size()
	}

	return l, nil
}

// Size returns the flat state length.
func (l *Layout) Size() int { return l.size }

// Sections returns a copy of the ordered sections.
func (l *Layout) Sections() []Section { return append([]Section(nil), l.sections...) }

// Section returns the section called name.
func (l *Layout) Section(name string) (Section, error) {
	i, ok := l.byName[name]
	if !ok {
		return Section{}, fmt.Errorf("layout: %q: %w", name, ErrUnknownSection)
	}

	return l.sections[i], nil
}

// Span returns the half-open [lo, hi) range of name inside the flat state.
func (l *Layout) Span(name string) (lo, hi int, err error) {
	i, ok := l.byName[name]
	if !ok {
		return 0, 0, fmt.Errorf("layout: %q: %w", name, ErrUnknownSection)
	}

	return l.offsets[i], l.offsets[i] + l.sections[i].Size(), nil
}

// Pack concatenates parts, one per section in order, into a fresh vector.
// Matrix parts are given row-major (see Flatten).
func (l *Layout) Pack(parts ...[]float64) ([]float64, error) {
	if len(parts) != len(l.sections) {
		return nil, fmt.Errorf("layout.Pack: %d parts for %d sections: %w", len(parts), len(l.sections), ErrShape)
	}
	out := make([]float64, l.size)
	for i, p := range parts {
		s := l.sections[i]
		if len(p) != s.Size() {
			return nil, fmt.Errorf("layout.Pack: %q len=%d want %d: %w", s.Name, len(p), s.Size(), ErrShape)
		}
		copy(out[l.offsets[i]:], p)
	}

	return out, nil
}

// Unpack splits y into fresh per-section slices keyed by name.
func (l *Layout) Unpack(y []float64) (map[string][]float64, error) {
	if len(y) != l.size {
		return nil, fmt.Errorf("layout.Unpack: len=%d want %d: %w", len(y), l.size, ErrShape)
	}
	out := make(map[string][]float64, len(l.sections))
	for i, s := range l.sections {
		out[s.Name] = append([]float64(nil), y[l.offsets[i]:l.offsets[i]+s.Size()]...)
	}

	return out, nil
}

// View returns the sub-slice of y holding name without copying. Evaluators
// use it on integrator-owned buffers; callers must not retain it.
func (l *Layout) View(y []float64, name string) []float64 {
	i := l.byName[name]
	return y[l.offsets[i] : l.offsets[i]+l.sections[i].Size()]
}

// Flatten returns the row-major contents of m in a fresh slice.
func Flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}

	return out
}
