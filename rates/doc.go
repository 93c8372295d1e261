// SPDX-License-Identifier: MIT

// Package rates provides Policy, the immutable per-edge transmission and
// per-vertex recovery rate lookup shared by every node-level model.
//
// Without weight labels a Policy is homogeneous:
//
//	Transmission(u,v) = τ    Recovery(u) = γ
//
// With labels the scalar rate is multiplied by the matching attribute:
//
//	Transmission(u,v) = τ·w(u,v)    Recovery(u) = γ·w(u)
//
// Weights are resolved once in New, so lookups never fail and a Policy can be
// read from any number of goroutines.
package rates
