// SPDX-License-Identifier: MIT

// Command epinet builds a contact network, integrates one epidemic model
// on it and writes the trajectory as a YAML report.
//
//	epinet -config run.yaml -model SIRCompactPairwise -out report.yaml -metrics
//
// Flags override the matching configuration keys; every key can also be
// set through an EPINET_* environment variable (EPINET_MODEL_TAU=2).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		model      = flag.String("model", "", "model name, overrides model.name")
		out        = flag.String("out", "", "report path or - for stdout, overrides output.path")
		metrics    = flag.Bool("metrics", false, "dump integrator metrics to stderr")
		list       = flag.Bool("list", false, "list model names and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range modelNames() {
			fmt.Println(name)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := runArgs{configPath: *configPath, model: *model, out: *out, metrics: *metrics}
	if err := run(ctx, args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "epinet:", err)
		os.Exit(1)
	}
}
