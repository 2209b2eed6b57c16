package classify

import "fmt"

var minorScale = NewScale([]Band{
	{
		Key: "bajo_peso", Name: "Underweight", RangeText: "<P3",
		Min: 0, Max: 3, Color: "#2196F3",
		BarStart: 0, BarEnd: 0.15,
		Interpretation: "interpretacion_bajo_peso",
	},
	{
		Key: "peso_saludable", Name: "Healthy weight", RangeText: "P3-P85",
		Min: 3, Max: 85, Color: "#4CAF50",
		BarStart: 0.15, BarEnd: 0.70,
		Interpretation: "interpretacion_peso_saludable",
	},
	{
		Key: "sobrepeso", Name: "Overweight", RangeText: "P85-P97",
		Min: 85, Max: 97, Color: "#FF9800",
		BarStart: 0.70, BarEnd: 0.90,
		Interpretation: "interpretacion_sobrepeso",
	},
	{
		Key: "obesidad", Name: "Obesity", RangeText: "≥P97",
		Min: 97, Max: 100, Color: "#D32F2F",
		BarStart: 0.90, BarEnd: 1,
		Interpretation: "interpretacion_obesidad",
	},
})

// Minor returns the four-band BMI-for-age percentile scale.
func Minor() *Scale { return minorScale }

// Narrative describes a percentile in words. The healthy band is split at
// the median; the split never changes the category.
func Narrative(percentile float64) string {
	switch {
	case percentile < 3:
		return fmt.Sprintf("BMI is below the 3rd percentile (P%.1f): underweight for age and sex.", percentile)
	case percentile < 50:
		return fmt.Sprintf("BMI is at P%.1f, within the healthy range and below the median for age and sex.", percentile)
	case percentile < 85:
		return fmt.Sprintf("BMI is at P%.1f, within the healthy range and at or above the median for age and sex.", percentile)
	case percentile < 97:
		return fmt.Sprintf("BMI is at P%.1f, between the 85th and 97th percentiles: overweight for age and sex.", percentile)
	default:
		return fmt.Sprintf("BMI is at or above the 97th percentile (P%.1f): obesity for age and sex.", percentile)
	}
}
