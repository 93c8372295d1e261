// SPDX-License-Identifier: MIT

// Package builder defines shared constants used by graph builders.
package builder

// Method names used to prefix errors with the constructor name.
const (
	MethodCycle              = "Cycle"
	MethodPath               = "Path"
	MethodStar               = "Star"
	MethodComplete           = "Complete"
	MethodRandomSparse       = "RandomSparse"
	MethodRandomRegular      = "RandomRegular"
	MethodConfigurationModel = "ConfigurationModel"
)

// CenterVertexID is the identifier of the hub vertex in Star.
const CenterVertexID = "Center"

// Minimum node counts per topology.
const (
	MinCycleNodes    = 3
	MinPathNodes     = 2
	MinStarNodes     = 2
	MinCompleteNodes = 1
	MinRandomNodes   = 1
)

// Probability domain for RandomSparse.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// maxStubMatchingAttempts bounds reshuffles in RandomRegular.
const maxStubMatchingAttempts = 50
