// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes a build by mutating a builderConfig before
// graph construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic vertex ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
// Use this in tests and examples to lock outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithEdgeAttr attaches label to every edge created by subsequent
// constructors, drawing values from fn. Panics on empty label or nil fn.
func WithEdgeAttr(label string, fn WeightFn) BuilderOption {
	if label == "" || fn == nil {
		panic("builder: WithEdgeAttr(empty label or nil fn)")
	}
	return func(c *builderConfig) {
		c.edgeAttrs = append(c.edgeAttrs, attrSpec{label: label, fn: fn})
	}
}

// WithVertexAttr attaches label to every vertex created by constructors.
// Panics on empty label or nil fn.
func WithVertexAttr(label string, fn WeightFn) BuilderOption {
	if label == "" || fn == nil {
		panic("builder: WithVertexAttr(empty label or nil fn)")
	}
	return func(c *builderConfig) {
		c.vertexAttrs = append(c.vertexAttrs, attrSpec{label: label, fn: fn})
	}
}
