// SPDX-License-Identifier: MIT

// Package telemetry exports integrator activity as Prometheus metrics.
// A Collector implements ode.Observer and is attached to an integrator
// with ode.WithObserver.
package telemetry
