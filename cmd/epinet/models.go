// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"math"
	"sort"

	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/epidemic"
)

// params are the disease parameters of one run. Every model starts from a
// uniform infected fraction rho.
type params struct {
	Tau   float64 `yaml:"tau"`
	Gamma float64 `yaml:"gamma"`
	Rho   float64 `yaml:"rho"`
	Tmax  float64 `yaml:"tmax"`
}

type driver func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error)

type fromGraph func(context.Context, core.Network, float64, float64, ...epidemic.Option) (*epidemic.Result, error)

// with appends extra to opts without touching the caller's backing array.
func with(opts []epidemic.Option, extra ...epidemic.Option) []epidemic.Option {
	return append(opts[:len(opts):len(opts)], extra...)
}

func withRho(fn fromGraph) driver {
	return func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return fn(ctx, g, p.Tau, p.Gamma, with(opts, epidemic.WithRho(p.Rho))...)
	}
}

func uniform(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

var drivers = map[string]driver{
	"SISIndividualBased": func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return epidemic.SISIndividualBased(ctx, g, uniform(g.Order(), p.Rho), p.Tau, p.Gamma, opts...)
	},
	"SIRIndividualBased": func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return epidemic.SIRIndividualBased(ctx, g, uniform(g.Order(), 1-p.Rho), uniform(g.Order(), p.Rho), p.Tau, p.Gamma, opts...)
	},
	"SISPairBased": func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return epidemic.SISPairBased(ctx, g, uniform(g.Order(), p.Rho), p.Tau, p.Gamma, opts...)
	},
	"SIRPairBased": func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return epidemic.SIRPairBased(ctx, g, uniform(g.Order(), p.Rho), p.Tau, p.Gamma, opts...)
	},
	"SIRPairBased2": withRho(epidemic.SIRPairBased2),

	"SISHomogeneousMeanfield":   withRho(epidemic.SISHomogeneousMeanfieldFromGraph),
	"SIRHomogeneousMeanfield":   withRho(epidemic.SIRHomogeneousMeanfieldFromGraph),
	"SISHomogeneousPairwise":    withRho(epidemic.SISHomogeneousPairwiseFromGraph),
	"SIRHomogeneousPairwise":    withRho(epidemic.SIRHomogeneousPairwiseFromGraph),
	"SISHeterogeneousMeanfield": withRho(epidemic.SISHeterogeneousMeanfieldFromGraph),
	"SIRHeterogeneousMeanfield": withRho(epidemic.SIRHeterogeneousMeanfieldFromGraph),
	"SISHeterogeneousPairwise":  withRho(epidemic.SISHeterogeneousPairwiseFromGraph),
	"SIRHeterogeneousPairwise":  withRho(epidemic.SIRHeterogeneousPairwiseFromGraph),
	"SISCompactPairwise":        withRho(epidemic.SISCompactPairwiseFromGraph),
	"SIRCompactPairwise":        withRho(epidemic.SIRCompactPairwiseFromGraph),
	"SISSuperCompactPairwise":   withRho(epidemic.SISSuperCompactPairwiseFromGraph),
	"SIRSuperCompactPairwise":   withRho(epidemic.SIRSuperCompactPairwiseFromGraph),
	"SISEffectiveDegree":        withRho(epidemic.SISEffectiveDegreeFromGraph),
	"SIREffectiveDegree":        withRho(epidemic.SIREffectiveDegreeFromGraph),
	"SISCompactEffectiveDegree": withRho(epidemic.SISCompactEffectiveDegreeFromGraph),
	"SIRCompactEffectiveDegree": withRho(epidemic.SIRCompactEffectiveDegreeFromGraph),
	"EBCM":                      withRho(epidemic.EBCMFromGraph),

	// tau is read as the per-step transmission probability; steps run to tmax.
	"EBCMDiscrete": func(ctx context.Context, g core.Network, p params, opts []epidemic.Option) (*epidemic.Result, error) {
		return epidemic.EBCMDiscreteFromGraph(ctx, g, p.Tau, int(math.Round(p.Tmax)), with(opts, epidemic.WithRho(p.Rho))...)
	},
}

func modelNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
