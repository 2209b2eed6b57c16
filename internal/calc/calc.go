// Package calc exposes the adult and minor BMI computations. Every entry
// point returns either a result or a *calcerr.Error, never a panic.
package calc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/bmi-percentile/internal/calcerr"
	"github.com/rcliao/bmi-percentile/internal/classify"
	"github.com/rcliao/bmi-percentile/internal/lms"
	"github.com/rcliao/bmi-percentile/internal/measure"
	"github.com/rcliao/bmi-percentile/internal/model"
)

// Age limits for percentile lookups, inclusive.
const (
	MinAgeYears  = 5
	MaxAgeYears  = 19
	MinAgeMonths = MinAgeYears * 12
	MaxAgeMonths = MaxAgeYears * 12
)

// AdultResult is the outcome of an adult computation.
type AdultResult struct {
	BMI               float64       `json:"imc"`
	Category          classify.Band `json:"categoria"`
	Position          float64       `json:"posicion"`
	InterpretationKey string        `json:"interpretacion_key"`

	Measurement measure.Measurement `json:"-"`
}

// MinorResult is the outcome of a minor computation. AgeYears is only set
// when the age came from a birth date.
type MinorResult struct {
	BMI               float64       `json:"imc"`
	Percentile        float64       `json:"percentil"`
	InterpretationKey string        `json:"interpretacion_key"`
	AgeMonths         int           `json:"edad_meses"`
	AgeYears          *float64      `json:"edad_años,omitempty"`
	Category          classify.Band `json:"categoria"`
	Position          float64       `json:"posicion"`
	Narrative         string        `json:"narrativa"`
	ZScore            float64       `json:"z_score"`

	Sex         model.Sex           `json:"-"`
	Measurement measure.Measurement `json:"-"`
}

// Calculator runs the computations against a reference-table source.
type Calculator struct {
	tables lms.Source
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the clock used to evaluate birth dates.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

// New returns a Calculator reading tables from src.
func New(src lms.Source, opts ...Option) *Calculator {
	c := &Calculator{tables: src, now: time.Now, logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// guard converts a panic into a ComputationError and any other error into
// a *calcerr.Error.
func (c *Calculator) guard(op string, err *error) {
	if r := recover(); r != nil {
		c.logger.Error("computation panicked", zap.String("op", op), zap.Any("panic", r))
		*err = calcerr.New(calcerr.ComputationError, "", "unexpected error in %s: %v", op, r)
		return
	}
	if *err != nil {
		e := calcerr.As(*err)
		c.logger.Warn("computation failed", zap.String("op", op),
			zap.String("kind", string(e.Kind)), zap.String("field", e.Field), zap.Error(e))
		*err = e
	}
}

// Adult computes and classifies an adult BMI.
func (c *Calculator) Adult(weight, height any) (res *AdultResult, err error) {
	defer c.guard("adult", &err)

	m, err := measure.Normalize(weight, height)
	if err != nil {
		return nil, err
	}
	bmi, err := m.BMI()
	if err != nil {
		return nil, err
	}
	info := classify.Adult().Info(bmi)
	return &AdultResult{
		BMI:               bmi,
		Category:          info.Category,
		Position:          info.Position,
		InterpretationKey: info.Category.Interpretation,
		Measurement:       m,
	}, nil
}

// MinorByAge computes a BMI-for-age percentile from an age in years.
func (c *Calculator) MinorByAge(ctx context.Context, sex string, age, weight, height any) (res *MinorResult, err error) {
	defer c.guard("minor_by_age", &err)

	s, err := parseSex(sex)
	if err != nil {
		return nil, err
	}
	years, err := measure.Years(age)
	if err != nil {
		return nil, err
	}
	if years < MinAgeYears || years > MaxAgeYears {
		return nil, ageOutOfRange(years)
	}
	return c.minor(ctx, s, int(years*12), weight, height)
}

// MinorByBirthdate computes a BMI-for-age percentile from a birth date.
func (c *Calculator) MinorByBirthdate(ctx context.Context, sex, birthdate string, weight, height any) (res *MinorResult, err error) {
	defer c.guard("minor_by_birthdate", &err)

	s, err := parseSex(sex)
	if err != nil {
		return nil, err
	}
	months, err := measure.AgeInMonths(birthdate, c.now())
	if err != nil {
		return nil, err
	}
	years := float64(months) / 12
	if months < MinAgeMonths || months > MaxAgeMonths {
		return nil, ageOutOfRange(years)
	}
	res, err = c.minor(ctx, s, months, weight, height)
	if err != nil {
		return nil, err
	}
	rounded := measure.Round(years, 1)
	res.AgeYears = &rounded
	return res, nil
}

func (c *Calculator) minor(ctx context.Context, sex model.Sex, months int, weight, height any) (*MinorResult, error) {
	m, err := measure.Normalize(weight, height)
	if err != nil {
		return nil, err
	}
	bmi, err := m.BMI()
	if err != nil {
		return nil, err
	}
	table, err := c.tables.Load(ctx, sex)
	if err != nil {
		if calcerr.Is(err, calcerr.TableUnavailable) {
			return nil, err
		}
		return nil, calcerr.Wrap(calcerr.TableUnavailable, "", err, "could not load percentile tables")
	}
	out, err := lms.Compute(table, months, bmi)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("percentile computed",
		zap.String("sex", string(sex)),
		zap.Int("age_months", months),
		zap.Int("row_months", out.Row.AgeMonths),
		zap.Float64("bmi", bmi),
		zap.Float64("z", out.Z),
		zap.Float64("percentile", out.Percentile))

	info := classify.Minor().Info(out.Percentile)
	return &MinorResult{
		BMI:               bmi,
		Percentile:        out.Percentile,
		InterpretationKey: info.Category.Interpretation,
		AgeMonths:         months,
		Category:          info.Category,
		Position:          info.Position,
		Narrative:         classify.Narrative(out.Percentile),
		ZScore:            measure.Round(out.Z, 4),
		Sex:               sex,
		Measurement:       m,
	}, nil
}

func parseSex(s string) (model.Sex, error) {
	sex, err := model.ParseSex(s)
	if err != nil {
		return "", calcerr.Wrap(calcerr.InvalidFormat, "sex", err, "invalid sex")
	}
	return sex, nil
}

func ageOutOfRange(years float64) *calcerr.Error {
	e := calcerr.New(calcerr.AgeOutOfRange, "age",
		"age must be between %d and %d years (currently %.1f years)", MinAgeYears, MaxAgeYears, years)
	e.AgeYears = years
	return e
}
