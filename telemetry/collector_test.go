// SPDX-License-Identifier: MIT

package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/katalvlaran/epinet/ode"
	"github.com/katalvlaran/epinet/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(labels...).Write(&m))
	return m.GetCounter().GetValue()
}

func TestCollector_Events(t *testing.T) {
	c := telemetry.NewCollector()
	c.StepAccepted("dopri5", 0.1)
	c.StepAccepted("dopri5", 0.2)
	c.StepRejected("dopri5", 0.4)
	c.Finished("dopri5", ode.Statistics{Steps: 2, Rejected: 1, Evaluations: 19}, nil)
	c.Finished("adams", ode.Statistics{}, errors.New("boom"))

	assert.Equal(t, 2.0, counterValue(t, c.StepsTotal, "dopri5"))
	assert.Equal(t, 1.0, counterValue(t, c.RejectedTotal, "dopri5"))
	assert.Equal(t, 19.0, counterValue(t, c.EvaluationsTotal, "dopri5"))
	assert.Equal(t, 1.0, counterValue(t, c.RunsTotal, "dopri5", "ok"))
	assert.Equal(t, 1.0, counterValue(t, c.RunsTotal, "adams", "error"))

	var m dto.Metric
	require.NoError(t, c.StepSize.WithLabelValues("dopri5").(prometheus.Histogram).Write(&m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.3, m.GetHistogram().GetSampleSum(), 1e-12)
}

func TestCollector_ObservesIntegrator(t *testing.T) {
	c := telemetry.NewCollector()
	decay := func(_ float64, y, dy []float64) { dy[0] = -y[0] }
	ig := ode.NewDormandPrince(ode.WithObserver(c))

	_, st, err := ig.Integrate(context.Background(), decay, []float64{1}, ode.LinSpace(0, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, float64(st.Steps), counterValue(t, c.StepsTotal, ig.Name()))
	assert.Equal(t, float64(st.Rejected), counterValue(t, c.RejectedTotal, ig.Name()))
	assert.Equal(t, float64(st.Evaluations), counterValue(t, c.EvaluationsTotal, ig.Name()))
	assert.Equal(t, 1.0, counterValue(t, c.RunsTotal, ig.Name(), "ok"))
}

func TestCollector_WriteText(t *testing.T) {
	c := telemetry.NewCollector()
	c.StepAccepted("adams", 0.01)
	c.Finished("adams", ode.Statistics{Evaluations: 4}, nil)

	var sb strings.Builder
	require.NoError(t, c.WriteText(&sb))
	out := sb.String()
	assert.Contains(t, out, `epinet_ode_steps_total{method="adams"} 1`)
	assert.Contains(t, out, `epinet_ode_evaluations_total{method="adams"} 4`)
	assert.Contains(t, out, "# TYPE epinet_ode_step_size histogram")

	families, err := c.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
