package lms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

var boys10 = Row{AgeMonths: 120, L: -1.4983, M: 16.4433, S: 0.1316}

func TestNearest(t *testing.T) {
	table := Table{
		{AgeMonths: 100, L: 1},
		{AgeMonths: 110, L: 2},
		{AgeMonths: 120, L: 3},
		{AgeMonths: 130, L: 4},
	}
	tests := []struct {
		months int
		want   int
	}{
		{120, 120},
		{118, 120},
		{115, 110}, // tie between 110 and 120, first wins
		{10, 100},
		{500, 130},
	}
	for _, tt := range tests {
		got, err := table.Nearest(tt.months)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.AgeMonths, "months %d", tt.months)
	}
}

func TestNearest_TieFirstInTableOrder(t *testing.T) {
	// Unordered table: both rows are 5 months away.
	table := Table{{AgeMonths: 125, L: 1}, {AgeMonths: 115, L: 2}}
	got, err := table.Nearest(120)
	require.NoError(t, err)
	assert.Equal(t, 125, got.AgeMonths)
}

func TestNearest_Empty(t *testing.T) {
	_, err := Table{}.Nearest(120)
	assert.True(t, calcerr.Is(err, calcerr.TableUnavailable))
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-15)
	assert.InDelta(t, 0.8413, NormalCDF(1), 1e-4)
	assert.InDelta(t, 0.0228, NormalCDF(-2), 1e-4)

	prev := -1.0
	for x := -6.0; x <= 6; x += 0.25 {
		got := NormalCDF(x)
		assert.Greater(t, got, prev, "x=%g", x)
		prev = got
	}
}

func TestZScoreAndPercentile(t *testing.T) {
	tests := []struct {
		bmi float64
		z   float64
		pct float64
	}{
		{16.46, 0.0077076, 50.3},
		{20.0, 1.2895443, 90.1},
		{13.0, -2.1401399, 1.6},
	}
	for _, tt := range tests {
		z, err := ZScore(tt.bmi, boys10)
		require.NoError(t, err)
		assert.InDelta(t, tt.z, z, 1e-6)
		assert.Equal(t, tt.pct, Percentile(z))
	}
}

func TestZScore_AtMedianIsZero(t *testing.T) {
	z, err := ZScore(boys10.M, boys10)
	require.NoError(t, err)
	assert.InDelta(t, 0, z, 1e-12)
	assert.Equal(t, 50.0, Percentile(z))
}

func TestZScore_Degenerate(t *testing.T) {
	for _, r := range []Row{
		{AgeMonths: 120, L: 0, M: 16, S: 0.13},
		{AgeMonths: 120, L: -1.5, M: 16, S: 0},
		{AgeMonths: 120, L: -1.5, M: 0, S: 0.13},
	} {
		_, err := ZScore(16, r)
		assert.True(t, calcerr.Is(err, calcerr.ComputationError), "row %+v", r)
	}

	// Negative base with fractional exponent is NaN.
	_, err := ZScore(-1, boys10)
	assert.True(t, calcerr.Is(err, calcerr.ComputationError))
}

func TestCompute(t *testing.T) {
	table := Table{{AgeMonths: 119, L: 9, M: 9, S: 9}, boys10, {AgeMonths: 121, L: 9, M: 9, S: 9}}
	res, err := Compute(table, 120, 16.46)
	require.NoError(t, err)
	assert.Equal(t, boys10, res.Row)
	assert.Equal(t, 50.3, res.Percentile)
	assert.False(t, math.IsNaN(res.Z))
}
