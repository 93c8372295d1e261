// SPDX-License-Identifier: MIT

// Package: epinet/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn        = DefaultIDFn  ("0","1","2",...)
//   • rng         = nil          (pure/deterministic unless seeded)
//   • attributes  = none

package builder

import "math/rand"

// attrSpec binds an attribute label to its generator.
type attrSpec struct {
	label string
	fn    WeightFn
}

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// Vertex ID strategy: index -> ID.
	idFn IDFn
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Attribute generators applied to every new edge / vertex, in option order.
	edgeAttrs   []attrSpec
	vertexAttrs []attrSpec
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{idFn: DefaultIDFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
