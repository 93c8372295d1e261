// SPDX-License-Identifier: MIT

// Package layout describes how a structured compartment state is flattened
// into the single vector an integrator advances, and how a trajectory is
// split back into named per-section time series.
//
// A Layout is an ordered list of Sections. Each section is a Rows×Cols block
// stored row-major; vectors have Cols == 1 and scalars are 1×1. Pack and
// Unpack always allocate: caller-owned slices are never aliased.
//
//	l, _ := layout.New(layout.Vector("X", n), layout.Vector("Y", n), layout.Matrix("XY", n, n))
//	y0, _ := l.Pack(x0, y0, layout.Flatten(xy0))
package layout
