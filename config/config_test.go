// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/epinet/config"
	"github.com/katalvlaran/epinet/ode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Defaults(t *testing.T) {
	s, err := config.NewConfig().Decode()
	require.NoError(t, err)

	assert.Equal(t, "SIRCompactPairwise", s.Model.Name)
	assert.Equal(t, 1001, s.Time.Tcount)
	assert.Equal(t, config.SolverModelDefault, s.Solver.Method)
	assert.Nil(t, s.Solver.Integrator())
	assert.Len(t, s.Solver.Options(), 2)
	assert.Equal(t, ode.DefaultMaxSteps, s.Solver.MaxSteps)
	assert.Zero(t, s.Solver.Timeout)
	assert.Equal(t, "random_regular", s.Graph.Kind)
	assert.Empty(t, s.Graph.Degrees)
	assert.Equal(t, "-", s.Output.Path)
	assert.False(t, s.Metrics.Enabled)
}

func TestDecode_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := `
model:
  name: SISHomogeneousPairwise
  tau: 0.5
  gamma: 2
solver:
  method: adams
  timeout: 30s
graph:
  kind: configuration
  degrees: "3,3,2,2"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c := config.NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	c.Set("time.tmax", 20)
	t.Setenv("EPINET_MODEL_RHO", "0.25")

	s, err := c.Decode()
	require.NoError(t, err)
	assert.Equal(t, "SISHomogeneousPairwise", s.Model.Name)
	assert.Equal(t, 0.5, s.Model.Tau)
	assert.Equal(t, 0.25, s.Model.Rho)
	assert.Equal(t, 20.0, s.Time.Tmax)
	assert.Equal(t, 30*time.Second, s.Solver.Timeout)
	assert.Equal(t, []int{3, 3, 2, 2}, s.Graph.Degrees)
	assert.Equal(t, ode.MethodAdams, s.Solver.Integrator().Name())
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		key   string
		value interface{}
	}{
		{"model.name", ""},
		{"model.tau", -1},
		{"model.rho", 1.5},
		{"time.tcount", 0},
		{"time.tmax", -1},
		{"solver.method", "lsoda"},
		{"solver.rtol", 0},
		{"solver.timeout", "-1s"},
		{"graph.kind", ""},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			c := config.NewConfig()
			c.Set(tc.key, tc.value)
			_, err := c.Decode()
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	c := config.NewConfig()
	c.Set("logging.level", "warn")
	c.SetLogOutput(&buf)
	log := c.CreateLogger()

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "epinet")

	c.Set("logging.level", "loud")
	assert.Equal(t, "info", c.CreateLogger().GetLevel().String())
}
