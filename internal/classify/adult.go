package classify

// AdultCeiling is the BMI at which the obesity III band fills the bar.
const AdultCeiling = 50.0

var adultScale = NewScale([]Band{
	{
		Key: "bajo_peso", Name: "Underweight", RangeText: "<18.5",
		Min: 0, Max: 18.5, Color: "#2196F3",
		BarStart: 0, BarEnd: 1.0 / 6,
		Interpretation: "interpretacion_bajo_peso_adulto",
	},
	{
		Key: "peso_normal", Name: "Normal", RangeText: "18.5-24.9",
		Min: 18.5, Max: 24.9, Color: "#4CAF50", UpperInclusive: true,
		BarStart: 1.0 / 6, BarEnd: 2.0 / 6,
		Interpretation: "interpretacion_normal_adulto",
	},
	{
		Key: "sobrepeso", Name: "Overweight", RangeText: "25-29.9",
		Min: 24.9, Max: 29.9, Color: "#FF9800", UpperInclusive: true,
		BarStart: 2.0 / 6, BarEnd: 3.0 / 6,
		Interpretation: "interpretacion_sobrepeso_adulto",
	},
	{
		Key: "obesidad_1", Name: "Obesity I", RangeText: "30-34.9",
		Min: 29.9, Max: 34.9, Color: "#FF5722", UpperInclusive: true,
		BarStart: 3.0 / 6, BarEnd: 4.0 / 6,
		Interpretation: "interpretacion_obesidad_1_adulto",
	},
	{
		Key: "obesidad_2", Name: "Obesity II", RangeText: "35-39.9",
		Min: 34.9, Max: 39.9, Color: "#D32F2F", UpperInclusive: true,
		BarStart: 4.0 / 6, BarEnd: 5.0 / 6,
		Interpretation: "interpretacion_obesidad_2_adulto",
	},
	{
		Key: "obesidad_3", Name: "Obesity III", RangeText: "≥40",
		Min: 39.9, Max: AdultCeiling, Color: "#7B1FA2",
		BarStart: 5.0 / 6, BarEnd: 1,
		Interpretation: "interpretacion_obesidad_3_adulto",
	},
})

// Adult returns the six-band adult BMI scale.
func Adult() *Scale { return adultScale }
