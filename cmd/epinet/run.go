// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/config"
	"github.com/katalvlaran/epinet/core"
	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/ode"
	"github.com/katalvlaran/epinet/telemetry"
	"gopkg.in/yaml.v3"
)

var (
	errUnknownModel = errors.New("unknown model")
	errUnknownGraph = errors.New("unknown graph kind")
)

type runArgs struct {
	configPath string
	model      string
	out        string
	metrics    bool
}

// report is the YAML document written for every run.
type report struct {
	RunID      string         `yaml:"run_id"`
	Model      string         `yaml:"model"`
	Graph      graphInfo      `yaml:"graph"`
	Params     params         `yaml:"params"`
	Times      []float64      `yaml:"times,flow"`
	S          []float64      `yaml:"S,flow"`
	I          []float64      `yaml:"I,flow"`
	R          []float64      `yaml:"R,flow,omitempty"`
	Statistics ode.Statistics `yaml:"statistics"`
}

type graphInfo struct {
	Kind  string `yaml:"kind"`
	Order int    `yaml:"order"`
	Size  int    `yaml:"size"`
	Seed  int64  `yaml:"seed"`
}

func run(ctx context.Context, args runArgs, stdout, stderr io.Writer) error {
	cfg := config.NewConfig()
	cfg.SetLogOutput(stderr)
	if args.configPath != "" {
		if err := cfg.LoadFromFile(args.configPath); err != nil {
			return fmt.Errorf("load %s: %w", args.configPath, err)
		}
	}
	if args.model != "" {
		cfg.Set("model.name", args.model)
	}
	if args.out != "" {
		cfg.Set("output.path", args.out)
	}
	if args.metrics {
		cfg.Set("metrics.enabled", true)
	}
	s, err := cfg.Decode()
	if err != nil {
		return err
	}
	log := cfg.CreateLogger()

	drive, ok := drivers[s.Model.Name]
	if !ok {
		return fmt.Errorf("%q: %w", s.Model.Name, errUnknownModel)
	}
	g, err := buildGraph(s.Graph)
	if err != nil {
		return err
	}
	log.Info().Str("graph", s.Graph.Kind).Int("order", g.Order()).Int("size", g.Size()).Msg("network built")

	var collector *telemetry.Collector
	solverOpts := []ode.Option{ode.WithLogger(log)}
	if s.Metrics.Enabled {
		collector = telemetry.NewCollector()
		solverOpts = append(solverOpts, ode.WithObserver(collector))
	}
	opts := []epidemic.Option{
		epidemic.WithTimes(s.Time.Tmin, s.Time.Tmax, s.Time.Tcount),
		epidemic.WithLogger(log),
	}
	if ig := s.Solver.Integrator(solverOpts...); ig != nil {
		opts = append(opts, epidemic.WithIntegrator(ig))
	} else {
		opts = append(opts, epidemic.WithSolverOptions(s.Solver.Options(solverOpts...)...))
	}
	if s.Output.FullData {
		opts = append(opts, epidemic.WithFullData())
	}

	if s.Solver.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Solver.Timeout)
		defer cancel()
	}
	p := params{Tau: s.Model.Tau, Gamma: s.Model.Gamma, Rho: s.Model.Rho, Tmax: s.Time.Tmax}
	res, err := drive(ctx, g, p, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Model.Name, err)
	}
	log.Info().Str("model", s.Model.Name).Int("steps", res.Stats.Steps).Int("evaluations", res.Stats.Evaluations).Msg("model integrated")

	rep := report{
		RunID:      uuid.New().String(),
		Model:      s.Model.Name,
		Graph:      graphInfo{Kind: s.Graph.Kind, Order: g.Order(), Size: g.Size(), Seed: s.Graph.Seed},
		Params:     p,
		Times:      res.Times,
		S:          res.S,
		I:          res.I,
		R:          res.R,
		Statistics: res.Stats,
	}
	if err := writeReport(s.Output.Path, stdout, rep); err != nil {
		return err
	}

	if collector != nil {
		return collector.WriteText(stderr)
	}

	return nil
}

func writeReport(path string, stdout io.Writer, rep report) (err error) {
	w := stdout
	if path != "-" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create report: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return enc.Close()
}

func buildGraph(gs config.GraphSettings) (*core.Graph, error) {
	var cons builder.Constructor
	switch gs.Kind {
	case "complete":
		cons = builder.Complete(gs.N)
	case "cycle":
		cons = builder.Cycle(gs.N)
	case "path":
		cons = builder.Path(gs.N)
	case "star":
		cons = builder.Star(gs.N)
	case "random_regular":
		cons = builder.RandomRegular(gs.N, gs.Degree)
	case "random_sparse":
		cons = builder.RandomSparse(gs.N, gs.P)
	case "configuration":
		cons = builder.ConfigurationModel(gs.Degrees)
	default:
		return nil, fmt.Errorf("%q: %w", gs.Kind, errUnknownGraph)
	}

	return builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(gs.Seed)}, cons)
}
