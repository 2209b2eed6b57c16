// Package model defines the core measurement data types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind partitions the history into adult and minor measurements.
type Kind string

const (
	KindAdult Kind = "adult"
	KindMinor Kind = "minor"
)

// ValidKinds are the allowed record kinds.
var ValidKinds = map[Kind]bool{
	KindAdult: true,
	KindMinor: true,
}

// ParseKind accepts "adult"/"adults"/"adultos" and "minor"/"minors"/"menores".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adult", "adults", "adultos":
		return KindAdult, nil
	case "minor", "minors", "menores":
		return KindMinor, nil
	}
	return "", fmt.Errorf("unknown kind %q (use adult or minor)", s)
}

// Sex selects the reference table for a minor.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts Spanish and English spellings, and single letters.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masculino", "male", "m", "boy":
		return Male, nil
	case "femenino", "female", "f", "girl":
		return Female, nil
	}
	return "", fmt.Errorf("sex must be Masculino or Femenino, got %q", s)
}

// Record is a stored measurement. Sex, AgeMonths and Percentile are only
// set for minors.
type Record struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	WeightKg   float64   `json:"weight_kg"`
	HeightM    float64   `json:"height_m"`
	BMI        float64   `json:"bmi"`
	Sex        Sex       `json:"sex,omitempty"`
	AgeMonths  *int      `json:"age_months,omitempty"`
	Percentile *float64  `json:"percentile,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Point is one sample of a history chart series.
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}
