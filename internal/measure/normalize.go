// Package measure turns raw weight, height and age inputs into canonical
// units and computes BMI from them.
package measure

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
)

// centimeterThreshold is the height above which input is read as centimeters.
const centimeterThreshold = 10

// number decodes a numeric Go value or a string using either '.' or ','
// as the decimal separator.
func number(field string, v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", "."))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, calcerr.New(calcerr.InvalidFormat, field, "invalid %s format: %q", field, x)
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := x.Float64()
		if err != nil {
			return 0, calcerr.New(calcerr.InvalidFormat, field, "invalid %s format: %v", field, v)
		}
		f = parsed
	default:
		return 0, calcerr.New(calcerr.InvalidFormat, field, "invalid %s format: %v", field, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, calcerr.New(calcerr.InvalidFormat, field, "invalid %s format: %v", field, v)
	}
	return f, nil
}

// Height returns the height in meters. Values above 10 are centimeters.
func Height(v any) (float64, error) {
	h, err := number("height", v)
	if err != nil {
		return 0, err
	}
	if h > centimeterThreshold {
		return h / 100, nil
	}
	return h, nil
}

// Weight returns the weight in kilograms.
func Weight(v any) (float64, error) {
	return number("weight", v)
}

// Years returns an age expressed in (possibly fractional) years.
func Years(v any) (float64, error) {
	return number("age", v)
}

var dateFormats = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), "2/1/2006"},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), "2-1-2006"},
}

// ParseBirthdate parses YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY, in that order.
func ParseBirthdate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range dateFormats {
		if !f.pattern.MatchString(s) {
			continue
		}
		t, err := time.ParseInLocation(f.layout, s, loc)
		if err != nil {
			return time.Time{}, calcerr.Wrap(calcerr.InvalidFormat, "birthdate", err, "invalid birth date %q", s)
		}
		return t, nil
	}
	return time.Time{}, calcerr.New(calcerr.InvalidFormat, "birthdate",
		"invalid birth date %q (use DD/MM/YYYY or YYYY-MM-DD)", s)
}

// AgeInMonths returns the completed months between the birth date and now.
func AgeInMonths(birth string, now time.Time) (int, error) {
	b, err := ParseBirthdate(birth, now.Location())
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if b.After(today) {
		return 0, calcerr.New(calcerr.FutureDate, "birthdate", "birth date %s is in the future", b.Format("2006-01-02"))
	}
	return MonthsBetween(b, now), nil
}

// MonthsBetween counts whole months from birth to now. A month only
// completes once its day-of-month has been reached.
func MonthsBetween(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()-birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	return months
}
