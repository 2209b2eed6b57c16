package measure

import (
	"math"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

const (
	MaxWeightKg = 1000.0
	MaxHeightM  = 3.0
)

// Measurement is a weight and height in canonical units.
type Measurement struct {
	WeightKg float64 `json:"weight_kg"`
	HeightM  float64 `json:"height_m"`
}

// Normalize decodes raw weight and height inputs.
func Normalize(weight, height any) (Measurement, error) {
	w, err := Weight(weight)
	if err != nil {
		return Measurement{}, err
	}
	h, err := Height(height)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{WeightKg: w, HeightM: h}, nil
}

// BMI returns the body mass index of m.
func (m Measurement) BMI() (float64, error) {
	return BMI(m.WeightKg, m.HeightM)
}

// BMI computes weight / height² rounded to 2 decimals.
func BMI(weightKg, heightM float64) (float64, error) {
	switch {
	case weightKg <= 0:
		return 0, calcerr.New(calcerr.NonPositive, "weight", "weight must be greater than 0")
	case heightM <= 0:
		return 0, calcerr.New(calcerr.NonPositive, "height", "height must be greater than 0")
	case weightKg > MaxWeightKg:
		return 0, calcerr.New(calcerr.OutOfRange, "weight", "weight %.2f kg is out of the valid range", weightKg)
	case heightM > MaxHeightM:
		return 0, calcerr.New(calcerr.OutOfRange, "height", "height %.2f m is out of the valid range", heightM)
	}
	return Round(weightKg/(heightM*heightM), 2), nil
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
