// SPDX-License-Identifier: MIT

// Package epinet is a toolkit for deterministic epidemic models on contact
// networks: the moment-closure ODE hierarchies for SIS and SIR spread, from
// per-node and per-pair systems down to degree-class and edge-based
// compartmental models, plus the final-size fixed points built on the
// degree generating function.
//
// Everything lives in subpackages:
//
//	core/      thread-safe undirected contact network with vertex and edge attributes
//	builder/   deterministic topologies: complete, cycle, path, star, random regular, Erdős–Rényi, configuration model
//	degree/    degree index, Nk and NkNl tables, Pk, generating function ψ
//	rates/     per-edge transmission and per-vertex recovery rates
//	layout/    flat state vector layouts, Pack/Unpack, per-section time series
//	ode/       Dormand–Prince 5(4) and Adams–Bashforth–Moulton integrators
//	epidemic/  the model drivers, FromGraph wrappers, EBCM and final sizes
//	summary/   Subsample and TimeShift helpers for model output
//	config/    viper-backed run configuration and logger factory
//	telemetry/ Prometheus metrics for integrator activity
//	cmd/epinet command line runner writing YAML reports
//
// A typical call builds a network and hands it to a FromGraph wrapper:
//
//	g, _ := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(1)},
//		builder.RandomRegular(1000, 4))
//	res, _ := epidemic.SIRCompactPairwiseFromGraph(ctx, g, 1, 1,
//		epidemic.WithRho(0.01), epidemic.WithTimes(0, 20, 201))
//
//	go get github.com/katalvlaran/epinet
package epinet
