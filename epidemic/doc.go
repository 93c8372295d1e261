// SPDX-License-Identifier: MIT

// Package epidemic implements deterministic SIS and SIR approximations of
// disease spread on contact networks, from exact node-level equations down
// to scalar closures of the degree distribution, plus the final-size fixed
// points of edge-based models.
//
// Model families:
//
//   - Individual-based: per-node infection probabilities, pairs closed as products
//   - Pair-based: per-node plus per-pair probabilities, triples closed (SIRPairBased2 stores pairs per edge)
//   - Homogeneous meanfield / pairwise: every vertex has the same degree n
//   - Heterogeneous meanfield / pairwise: per-degree classes and degree-pair counts
//   - Compact and super-compact pairwise: per-degree susceptibles or degree moments only
//   - Effective degree: vertices classified by (susceptible, infected) partner counts
//   - EBCM: edge-based compartmental model in continuous and discrete time
//   - Final size: epidemic probability and attack rate by fixed-point iteration
//
// Calling convention:
//
//	res, err := epidemic.SIRCompactPairwiseFromGraph(ctx, g, tau, gamma,
//		epidemic.WithRho(0.01),
//		epidemic.WithTimes(0, 50, 501),
//		epidemic.WithFullData())
//
// Every driver integrates over tcount equally spaced report times from tmin
// to tmax inclusive and returns population totals in Result; per-compartment
// series appear in Result.Detail only with WithFullData. FromGraph wrappers
// build the initial condition from a core.Network, infecting a fraction ρ
// (default 1/N) uniformly at random.
//
// Errors:
//
//   - Input validation fails before integration with an error matching
//     errors.Is(err, ErrConfiguration); finer sentinels wrap it.
//   - Integrator failures are *ode.IntegrationError values returned as is.
//   - A closure dividing by an emptied compartment contributes zero.
//
// Heterogeneous pairwise drivers default to the Adams multistep integrator,
// everything else to Dormand-Prince; WithIntegrator overrides either, and
// WithSolverOptions tunes the default without changing its method.
package epidemic
