// Package lms converts a BMI into a WHO BMI-for-age Z-score and percentile
// using the Lambda-Mu-Sigma method.
package lms

import (
	"math"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

// Row holds the LMS parameters for one age in months.
type Row struct {
	AgeMonths int     `json:"age_months"`
	L         float64 `json:"l"`
	M         float64 `json:"m"`
	S         float64 `json:"s"`
}

// Table is the ordered reference table for one sex.
type Table []Row

// Nearest returns the row whose age is closest to months. Ties go to the
// row that appears first.
func (t Table) Nearest(months int) (Row, error) {
	if len(t) == 0 {
		return Row{}, calcerr.New(calcerr.TableUnavailable, "", "percentile table is empty")
	}
	best := 0
	bestDist := absInt(t[0].AgeMonths - months)
	for i := 1; i < len(t); i++ {
		if d := absInt(t[i].AgeMonths - months); d < bestDist {
			best, bestDist = i, d
		}
	}
	return t[best], nil
}

// ZScore applies the LMS transform ((bmi/M)^L - 1) / (L*S).
func ZScore(bmi float64, r Row) (float64, error) {
	if r.L == 0 || r.S == 0 || r.M <= 0 {
		return 0, calcerr.New(calcerr.ComputationError, "",
			"degenerate LMS parameters at %d months (L=%g M=%g S=%g)", r.AgeMonths, r.L, r.M, r.S)
	}
	z := (math.Pow(bmi/r.M, r.L) - 1) / (r.L * r.S)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, calcerr.New(calcerr.ComputationError, "", "z-score is not finite for bmi %g at %d months", bmi, r.AgeMonths)
	}
	return z, nil
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// Percentile converts a Z-score into a percentile rounded to 1 decimal.
func Percentile(z float64) float64 {
	return math.Round(NormalCDF(z)*100*10) / 10
}

// Result is the outcome of a percentile lookup.
type Result struct {
	Row        Row     `json:"row"`
	Z          float64 `json:"z"`
	Percentile float64 `json:"percentile"`
}

// Compute looks up the nearest row for months and returns the percentile
// of bmi against it.
func Compute(t Table, months int, bmi float64) (*Result, error) {
	row, err := t.Nearest(months)
	if err != nil {
		return nil, err
	}
	z, err := ZScore(bmi, row)
	if err != nil {
		return nil, err
	}
	return &Result{Row: row, Z: z, Percentile: Percentile(z)}, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
