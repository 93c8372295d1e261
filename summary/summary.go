// SPDX-License-Identifier: MIT

package summary

import "fmt"

// Subsample reads each series at reportTimes, treating it as constant
// between consecutive observation times. The value reported at r is the
// last observation at a time ≤ r, so a report grid extending past the last
// observation holds the final value.
//
// Both time slices must be non-decreasing. The result has one slice per
// input series, in input order.
func Subsample(reportTimes, times []float64, series ...[]float64) ([][]float64, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("Subsample: %w", ErrEmpty)
	}
	for i, s := range series {
		if len(s) != len(times) {
			return nil, fmt.Errorf("Subsample: series %d len=%d, times len=%d: %w", i, len(s), len(times), ErrLengthMismatch)
		}
	}
	if len(reportTimes) > 0 && reportTimes[0] < times[0] {
		return nil, fmt.Errorf("Subsample: report %g < first observation %g: %w", reportTimes[0], times[0], ErrReportBeforeStart)
	}

	// pick[r] is the observation index reported at reportTimes[r]; it is
	// shared by every series.
	pick := make([]int, len(reportTimes))
	next := 0
	for r, rt := range reportTimes {
		for next < len(times) && times[next] <= rt {
			next++
		}
		pick[r] = next - 1
	}

	out := make([][]float64, len(series))
	for i, s := range series {
		vals := make([]float64, len(pick))
		for r, j := range pick {
			vals[r] = s[j]
		}
		out[i] = vals
	}

	return out, nil
}

// TimeShift returns the first time at which l reaches or exceeds threshold,
// or the last time if it never does.
func TimeShift(times, l []float64, threshold float64) (float64, error) {
	if len(times) == 0 {
		return 0, fmt.Errorf("TimeShift: %w", ErrEmpty)
	}
	if len(l) != len(times) {
		return 0, fmt.Errorf("TimeShift: len(L)=%d, times len=%d: %w", len(l), len(times), ErrLengthMismatch)
	}
	for i, v := range l {
		if v >= threshold {
			return times[i], nil
		}
	}

	return times[len(times)-1], nil
}
