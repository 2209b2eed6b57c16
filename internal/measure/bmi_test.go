package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

func TestBMI(t *testing.T) {
	got, err := BMI(70, 1.70)
	require.NoError(t, err)
	assert.Equal(t, 24.22, got)

	got, err = BMI(30, 1.35)
	require.NoError(t, err)
	assert.Equal(t, 16.46, got)

	got, err = BMI(40, 1.40)
	require.NoError(t, err)
	assert.Equal(t, 20.41, got)
}

func TestBMI_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		w, h  float64
		kind  calcerr.Kind
		field string
	}{
		{"zero weight", 0, 1.7, calcerr.NonPositive, "weight"},
		{"negative height", 70, -1, calcerr.NonPositive, "height"},
		{"heavy", 1000.5, 1.7, calcerr.OutOfRange, "weight"},
		{"tall", 70, 3.01, calcerr.OutOfRange, "height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BMI(tt.w, tt.h)
			var e *calcerr.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.field, e.Field)
		})
	}

	_, err := BMI(MaxWeightKg, MaxHeightM)
	assert.NoError(t, err, "bounds are inclusive")
}

func TestBMI_Monotonic(t *testing.T) {
	prev := 0.0
	for w := 10.0; w <= 200; w += 5 {
		got, err := BMI(w, 1.6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	prev = 1e9
	for h := 0.5; h <= 2.5; h += 0.05 {
		got, err := BMI(60, h)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	m, err := Normalize("70", "170")
	require.NoError(t, err)
	first, err := m.BMI()
	require.NoError(t, err)

	again, err := Normalize(m.WeightKg, m.HeightM)
	require.NoError(t, err)
	second, err := again.BMI()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
