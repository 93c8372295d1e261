// SPDX-License-Identifier: MIT

package epidemic

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, safeDiv(6, 3))
	assert.Equal(t, 0.0, safeDiv(5, 0))
	assert.Equal(t, 0.0, safeDiv(0, 0))
	assert.Equal(t, -0.5, safeDiv(1, -2))
}

// Emptied compartments must leave every closure finite.
func TestClosures_EmptyCompartments(t *testing.T) {
	ctx := context.Background()
	opts := []Option{WithTimes(0, 5, 6), WithFullData()}

	sis, err := SISCompactPairwise(ctx, []float64{0, 0, 10}, []float64{0, 0, 0}, 0, 20, 0, 1, 1, opts...)
	require.NoError(t, err)
	for r := range sis.Times {
		assert.Equal(t, 10.0, sis.S[r])
		assert.Equal(t, 0.0, sis.I[r])
	}

	sir, err := SIRCompactPairwise(ctx, []float64{0, 0, 0}, 5, 0, 0, 0, 1, 1, opts...)
	require.NoError(t, err)
	for r := range sir.Times {
		assert.False(t, math.IsNaN(sir.I[r]))
		assert.InDelta(t, 5, sir.I[r]+sir.R[r], 1e-9)
	}
}
