// Package classify maps a BMI (adults) or a BMI-for-age percentile (minors)
// onto an ordered set of categories and a position on a display bar.
package classify

import (
	"math"
)

// Band is one category of a Scale. Bands of a scale are contiguous: each
// band starts where the previous one ends.
type Band struct {
	Key       string  `json:"key"`
	Name      string  `json:"nombre"`
	RangeText string  `json:"rango_texto"`
	Min       float64 `json:"min_valor"`
	Max       float64 `json:"max_valor"`
	Color     string  `json:"color"`

	// UpperInclusive attributes a value equal to Max to this band instead
	// of the next one. Ignored on the last band, which has no upper bound.
	UpperInclusive bool `json:"-"`

	// BarStart and BarEnd are the slice of the [0,1] bar the band occupies.
	BarStart float64 `json:"-"`
	BarEnd   float64 `json:"-"`

	Interpretation string `json:"-"`
}

func (b Band) contains(v float64) bool {
	return v < b.Max || (b.UpperInclusive && v == b.Max)
}

// position interpolates v inside the band onto its bar slice. Max acts as
// the display ceiling for the last band.
func (b Band) position(v float64) float64 {
	frac := 0.0
	if b.Max > b.Min {
		frac = (v - b.Min) / (b.Max - b.Min)
	}
	frac = math.Max(0, math.Min(1, frac))
	return b.BarStart + frac*(b.BarEnd-b.BarStart)
}

// Scale is an ordered threshold table.
type Scale struct {
	bands []Band
}

// NewScale returns a scale over the given bands, lowest first.
func NewScale(bands []Band) *Scale {
	return &Scale{bands: bands}
}

// Bands returns a copy of the bands, lowest first.
func (s *Scale) Bands() []Band {
	out := make([]Band, len(s.bands))
	copy(out, s.bands)
	return out
}

func (s *Scale) index(v float64) int {
	last := len(s.bands) - 1
	for i := 0; i < last; i++ {
		if s.bands[i].contains(v) {
			return i
		}
	}
	return last
}

// Classify returns the band v falls into.
func (s *Scale) Classify(v float64) Band {
	return s.bands[s.index(v)]
}

// Position returns where v sits on the bar, in [0,1].
func (s *Scale) Position(v float64) float64 {
	return s.bands[s.index(v)].position(v)
}

// Info is a classified value ready for display.
type Info struct {
	Category Band    `json:"categoria"`
	Position float64 `json:"posicion"`
	Value    float64 `json:"valor"`
}

// Info classifies v and reports its bar position and 1-decimal value.
func (s *Scale) Info(v float64) Info {
	b := s.bands[s.index(v)]
	return Info{
		Category: b,
		Position: b.position(v),
		Value:    math.Round(v*10) / 10,
	}
}

// InterpretationKey returns the localization key for v's band.
func (s *Scale) InterpretationKey(v float64) string {
	return s.Classify(v).Interpretation
}
