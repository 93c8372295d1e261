// SPDX-License-Identifier: MIT

package summary_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/epinet/summary"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsample(t *testing.T) {
	times := []float64{0, 1.5, 2, 4}
	S := []float64{10, 9, 7, 4}
	I := []float64{0, 1, 3, 6}

	got, err := summary.Subsample([]float64{0, 1, 2, 3, 5, 8}, times, S, I)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float64{10, 10, 7, 7, 4, 4}, got[0])
	assert.Equal(t, []float64{0, 0, 3, 3, 6, 6}, got[1])

	none, err := summary.Subsample(nil, times, S)
	require.NoError(t, err)
	assert.Empty(t, none[0])
}

func TestSubsample_Errors(t *testing.T) {
	cases := []struct {
		name    string
		report  []float64
		times   []float64
		series  []float64
		wantErr error
	}{
		{"report before start", []float64{-1, 0}, []float64{0, 1}, []float64{1, 2}, summary.ErrReportBeforeStart},
		{"length mismatch", []float64{0}, []float64{0, 1}, []float64{1}, summary.ErrLengthMismatch},
		{"no observations", []float64{0}, nil, nil, summary.ErrEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := summary.Subsample(tc.report, tc.times, tc.series)
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, summary.ErrConfiguration)
		})
	}
}

func TestTimeShift(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	I := []float64{1, 4, 9, 16}

	at, err := summary.TimeShift(times, I, 9)
	require.NoError(t, err)
	assert.Equal(t, 2.0, at)

	never, err := summary.TimeShift(times, I, 100)
	require.NoError(t, err)
	assert.Equal(t, 3.0, never)

	_, err = summary.TimeShift(times, I[:2], 1)
	require.ErrorIs(t, err, summary.ErrLengthMismatch)
}

func sortedTimes(n int, raw []float64) []float64 {
	ts := append([]float64(nil), raw[:n]...)
	sort.Float64s(ts)
	return ts
}

func TestSubsample_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	observations := gen.SliceOfN(20, gen.Float64Range(0, 100))
	values := gen.SliceOfN(20, gen.Float64Range(-50, 50))

	properties.Property("sampling at distinct observation times is the identity", prop.ForAll(
		func(raw, vals []float64) bool {
			ts := sortedTimes(len(raw), raw)
			for i := 1; i < len(ts); i++ {
				if ts[i] == ts[i-1] {
					return true
				}
			}
			got, err := summary.Subsample(ts, ts, vals)
			if err != nil {
				return false
			}
			for i := range vals {
				if got[0][i] != vals[i] {
					return false
				}
			}
			return true
		},
		observations, values,
	))

	properties.Property("reports past the last observation hold the final value", prop.ForAll(
		func(raw, vals []float64, extra float64) bool {
			ts := sortedTimes(len(raw), raw)
			last := ts[len(ts)-1]
			got, err := summary.Subsample([]float64{last, last + extra, last + 2*extra}, ts, vals)
			if err != nil {
				return false
			}
			want := vals[len(vals)-1]
			return got[0][0] == want && got[0][1] == want && got[0][2] == want
		},
		observations, values, gen.Float64Range(0, 10),
	))

	properties.TestingRun(t)
}
