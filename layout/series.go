// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Series is the time history of one section: row r of Data is the section
// at report time r, flattened row-major.
type Series struct {
	Section Section
	Data    *mat.Dense
}

// Split cuts a trajectory (one row per report time, Size() columns) into one
// Series per section. Every Series owns its data.
func (l *Layout) Split(traj *mat.Dense) (map[string]*Series, error) {
	rows, cols := traj.Dims()
	if cols != l.size {
		return nil, fmt.Errorf("layout.Split: cols=%d want %d: %w", cols, l.size, ErrShape)
	}
	out := make(map[string]*Series, len(l.sections))
	for i, s := range l.sections {
		var d *mat.Dense
		if s.Size() > 0 && rows > 0 {
			d = mat.DenseCopyOf(traj.Slice(0, rows, l.offsets[i], l.offsets[i]+s.Size()))
		}
		out[s.Name] = &Series{Section: s, Data: d}
	}

	return out, nil
}

// Len returns the number of report times.
func (s *Series) Len() int {
	if s.Data == nil {
		return 0
	}
	r, _ := s.Data.Dims()

	return r
}

// At returns a copy of the section at report time r.
func (s *Series) At(r int) []float64 {
	return mat.Row(nil, r, s.Data)
}

// Matrix returns the section at report time r reshaped to Rows×Cols.
func (s *Series) Matrix(r int) *mat.Dense {
	return mat.NewDense(s.Section.Rows, s.Section.Cols, s.At(r))
}

// Scalar returns the time history of a 1×1 section, or of entry 0 otherwise.
func (s *Series) Scalar() []float64 {
	return s.Entry(0)
}

// Entry returns the time history of flat entry i.
func (s *Series) Entry(i int) []float64 {
	if s.Data == nil {
		return nil
	}
	return mat.Col(nil, i, s.Data)
}

// Totals returns, per report time, the sum over every entry of the section.
func (s *Series) Totals() []float64 {
	n := s.Len()
	out := make([]float64, n)
	for r := 0; r < n; r++ {
		out[r] = floats.Sum(s.Data.RawRowView(r))
	}

	return out
}
