// SPDX-License-Identifier: MIT

// Package builder assembles deterministic contact networks for the epidemic
// models: classical topologies (complete, cycle, path, star) and random
// ensembles (Erdős–Rényi, random regular, configuration model).
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption:     a function that mutates builderConfig before use.
//     – builderConfig:     holds RNG, ID scheme and attribute generators.
//   - Vertex-ID schemes (IDFn implementations):
//     – DefaultIDFn:       decimal strings ("0","1",…).
//     – PaddedIDFn:        zero-padded decimals whose lexical order is numeric order.
//   - Attribute generators (WeightFn implementations):
//     – ConstantWeightFn:  fixed value.
//     – UniformWeightFn:   uniform ∼U[min,max].
//     Attach them with WithEdgeAttr / WithVertexAttr to produce the labelled
//     transmission and recovery weights consumed by the rates package.
//
// Guarantees:
//
//   - Same options, seed and constructor order ⇒ identical networks.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel runtime errors for invalid build parameters, wrapped with the
//     constructor name.
package builder
