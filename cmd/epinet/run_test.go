// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const smallRun = `
model:
  tau: 0.5
  gamma: 1
  rho: 0.1
time:
  tmax: 2
  tcount: 3
graph:
  kind: random_regular
  n: 12
  degree: 3
  seed: 4
logging:
  level: error
`

func TestRun_WritesReport(t *testing.T) {
	cfg := writeConfig(t, smallRun)
	out := filepath.Join(t.TempDir(), "report.yaml")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), runArgs{configPath: cfg, model: "SIRHomogeneousMeanfield", out: out, metrics: true}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "epinet_ode_steps_total")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep report
	require.NoError(t, yaml.Unmarshal(raw, &rep))
	assert.Len(t, rep.RunID, 36)
	assert.Equal(t, "SIRHomogeneousMeanfield", rep.Model)
	assert.Equal(t, graphInfo{Kind: "random_regular", Order: 12, Size: 18, Seed: 4}, rep.Graph)
	assert.Equal(t, params{Tau: 0.5, Gamma: 1, Rho: 0.1, Tmax: 2}, rep.Params)
	assert.Equal(t, []float64{0, 1, 2}, rep.Times)
	require.Len(t, rep.R, 3)
	for i := range rep.Times {
		assert.InDelta(t, 12, rep.S[i]+rep.I[i]+rep.R[i], 1e-6)
	}
	assert.Positive(t, rep.Statistics.Steps)
}

func TestRun_SolverSelection(t *testing.T) {
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	err := run(ctx, runArgs{configPath: writeConfig(t, smallRun), model: "SISHeterogeneousPairwise", out: "-", metrics: true}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), `epinet_ode_steps_total{method="adams"}`)
	assert.NotContains(t, stderr.String(), `method="dopri5"`)

	stdout.Reset()
	stderr.Reset()
	explicit := writeConfig(t, smallRun+"solver:\n  method: dopri5\n")
	err = run(ctx, runArgs{configPath: explicit, model: "SISHeterogeneousPairwise", out: "-", metrics: true}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), `epinet_ode_steps_total{method="dopri5"}`)
	assert.NotContains(t, stderr.String(), `method="adams"`)
}

func TestRun_EveryModel(t *testing.T) {
	cfg := writeConfig(t, smallRun)
	for _, name := range modelNames() {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), runArgs{configPath: cfg, model: name, out: "-"}, &stdout, &stderr)
			require.NoError(t, err)

			var rep report
			require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &rep))
			assert.Equal(t, name, rep.Model)
			assert.Len(t, rep.S, len(rep.Times))
		})
	}
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	err := run(ctx, runArgs{configPath: writeConfig(t, smallRun), model: "SEIR"}, &stdout, &stderr)
	require.ErrorIs(t, err, errUnknownModel)

	err = run(ctx, runArgs{configPath: writeConfig(t, "graph:\n  kind: lattice\n")}, &stdout, &stderr)
	require.ErrorIs(t, err, errUnknownGraph)

	err = run(ctx, runArgs{configPath: filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	require.Error(t, err)
}
