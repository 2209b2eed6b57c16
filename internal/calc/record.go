package calc

import "github.com/rcliao/bmi-percentile/internal/model"

// Record returns the history entry for an adult result.
func (r *AdultResult) Record() model.Record {
	return model.Record{
		Kind:     model.KindAdult,
		WeightKg: r.Measurement.WeightKg,
		HeightM:  r.Measurement.HeightM,
		BMI:      r.BMI,
	}
}

// Record returns the history entry for a minor result.
func (r *MinorResult) Record() model.Record {
	months := r.AgeMonths
	pct := r.Percentile
	return model.Record{
		Kind:       model.KindMinor,
		WeightKg:   r.Measurement.WeightKg,
		HeightM:    r.Measurement.HeightM,
		BMI:        r.BMI,
		Sex:        r.Sex,
		AgeMonths:  &months,
		Percentile: &pct,
	}
}
