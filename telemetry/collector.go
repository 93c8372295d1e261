// SPDX-License-Identifier: MIT

package telemetry

import (
	"fmt"
	"io"

	"github.com/katalvlaran/epinet/ode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Collector holds integrator metrics, labelled by integrator method.
type Collector struct {
	StepsTotal       *prometheus.CounterVec
	RejectedTotal    *prometheus.CounterVec
	EvaluationsTotal *prometheus.CounterVec
	RunsTotal        *prometheus.CounterVec
	StepSize         *prometheus.HistogramVec

	registry *prometheus.Registry
}

var _ ode.Observer = (*Collector)(nil)

// NewCollector registers the integrator metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		StepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epinet_ode_steps_total",
				Help: "Accepted integrator steps",
			},
			[]string{"method"},
		),
		RejectedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epinet_ode_rejected_steps_total",
				Help: "Integrator steps rejected by the error control",
			},
			[]string{"method"},
		),
		EvaluationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epinet_ode_evaluations_total",
				Help: "Right-hand side evaluations",
			},
			[]string{"method"},
		),
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epinet_ode_runs_total",
				Help: "Finished integrations by outcome",
			},
			[]string{"method", "outcome"},
		),
		StepSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "epinet_ode_step_size",
				Help:    "Size of accepted integrator steps",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 9),
			},
			[]string{"method"},
		),
		registry: reg,
	}
}

// StepAccepted implements ode.Observer.
func (c *Collector) StepAccepted(method string, h float64) {
	c.StepsTotal.WithLabelValues(method).Inc()
	c.StepSize.WithLabelValues(method).Observe(h)
}

// StepRejected implements ode.Observer.
func (c *Collector) StepRejected(method string, _ float64) {
	c.RejectedTotal.WithLabelValues(method).Inc()
}

// Finished implements ode.Observer. Steps are counted as they happen, so
// only evaluations and the outcome are taken from stats.
func (c *Collector) Finished(method string, stats ode.Statistics, err error) {
	c.EvaluationsTotal.WithLabelValues(method).Add(float64(stats.Evaluations))
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.RunsTotal.WithLabelValues(method, outcome).Inc()
}

// Gatherer exposes the registry, e.g. for promhttp.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
