// SPDX-License-Identifier: MIT

// Package degree extracts the degree structure of a contact network and the
// initial conditions that the heterogeneous closures are seeded with.
//
// Index is the single bidirectional map between a raw degree value k and its
// array position. It is either dense (positions 0..kmax map to k = position)
// or restricted to the observed degrees, and it is threaded through every
// consumer so that array shapes agree without recomputation.
//
// Tables:
//
//	Table      Nk, Sk0 = (1-ρ)Nk, Ik0 = ρNk, Rk0 = 0       (dense index)
//	PairTable  NkNl, SkSl0 = (1-ρ)²NkNl, SkIl0 = (1-ρ)ρNkNl,
//	           IkIl0 = ρ²NkNl                               (dense or observed)
//
// Distribution is Pk, the fraction of vertices with degree k, and
// GeneratingFunction evaluates ψ(x) = Σ w_k x^k with its first two derivatives.
package degree
