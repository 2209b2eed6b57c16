package measure

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

func TestHeight(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"centimeters string", "170", 1.70},
		{"meters dot", "1.70", 1.70},
		{"meters comma", "1,70", 1.70},
		{"centimeters int", 170, 1.70},
		{"meters float", 1.35, 1.35},
		{"padded", "  165,5 ", 1.655},
		{"json number", json.Number("180"), 1.80},
		{"ten is meters", "10", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Height(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHeight_InvalidFormat(t *testing.T) {
	for _, in := range []any{"abc", "", "1.7.0", "NaN", "Inf", []byte("170"), nil} {
		_, err := Height(in)
		require.Error(t, err, "input %v", in)
		assert.True(t, calcerr.Is(err, calcerr.InvalidFormat), "input %v: %v", in, err)
	}
}

func TestWeight(t *testing.T) {
	got, err := Weight("70,5")
	require.NoError(t, err)
	assert.Equal(t, 70.5, got)

	got, err = Weight(150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got, "no unit heuristic for weight")

	_, err = Weight("seventy")
	assert.True(t, calcerr.Is(err, calcerr.InvalidFormat))
}

func TestAgeInMonths(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	}
	tests := []struct {
		name  string
		birth string
		now   time.Time
		want  int
	}{
		{"day not reached", "2010-06-15", day(2024, 6, 14), 167},
		{"day reached", "2010-06-15", day(2024, 6, 15), 168},
		{"later same month", "2010-06-15", day(2024, 6, 30), 168},
		{"slash format", "15/06/2010", day(2024, 6, 15), 168},
		{"dash format", "15-06-2010", day(2024, 6, 14), 167},
		{"single digits", "5/1/2016", day(2025, 8, 21), 115},
		{"born today", "2024-06-15", day(2024, 6, 15), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AgeInMonths(tt.birth, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAgeInMonths_Errors(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	_, err := AgeInMonths("31-13-2020", now)
	assert.True(t, calcerr.Is(err, calcerr.InvalidFormat), "month 13: %v", err)

	_, err = AgeInMonths("2020/01/01", now)
	assert.True(t, calcerr.Is(err, calcerr.InvalidFormat), "unknown layout: %v", err)

	_, err = AgeInMonths("30/02/2020", now)
	assert.True(t, calcerr.Is(err, calcerr.InvalidFormat), "february 30: %v", err)

	_, err = AgeInMonths("2024-06-16", now)
	assert.True(t, calcerr.Is(err, calcerr.FutureDate), "tomorrow: %v", err)
}
