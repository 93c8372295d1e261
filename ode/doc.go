// SPDX-License-Identifier: MIT

// Package ode integrates autonomous or time-dependent systems dy/dt = f(t, y)
// and reports the state at caller-chosen times.
//
// Two explicit integrators are provided:
//
//	DormandPrince  embedded Runge–Kutta 5(4), adaptive step, the default
//	Adams          Adams–Bashforth–Moulton order 4 (PECE) with RK4 start-up
//
// Neither ever forms a Jacobian, so the cost per step is linear in the state
// size. Adams needs two right-hand-side evaluations per step instead of six,
// which pays off on large pairwise systems.
//
// Integrate returns a len(times)×len(y0) matrix whose row r is the state at
// times[r]; row 0 is a copy of y0. Steps are clipped so that every report
// time is hit exactly rather than interpolated.
//
// Failures are reported as *IntegrationError carrying the method, time and
// step at which integration stopped.
package ode
