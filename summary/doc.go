// SPDX-License-Identifier: MIT

// Package summary holds small helpers for post-processing model output:
// Subsample resamples piecewise-constant series onto a report grid and
// TimeShift finds the first time a series reaches a threshold.
package summary
