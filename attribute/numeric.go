package attribute

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// Distributions understood by NumericAttribute.
const (
	Uniform = "uniform"
	Normal  = "normal"
)

// NumericParams describe the value range and distribution of a numeric
// attribute.
type NumericParams struct {
	Min, Max float64

	// Distribution is Uniform (the default when empty) or Normal.
	Distribution string

	// Mean and StdDev parameterize Normal; draws are clamped to [Min, Max].
	Mean, StdDev float64

	// Integer rounds every value to the nearest integer in range.
	Integer bool
}

// NumericAttribute draws numbers and formats them as shortest decimal text,
// or as plain integers when Integer is set.
type NumericAttribute struct {
	base
	rng    *rand.Rand
	params NumericParams
}

// NewNumericAttribute validates params and returns a numeric attribute.
func NewNumericAttribute(name string, params NumericParams, opts Options) (*NumericAttribute, error) {
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	if !finite(params.Min) || !finite(params.Max) {
		return nil, fmt.Errorf("%w: %s: bounds must be finite", ErrInvalidSpec, name)
	}
	if params.Min > params.Max {
		return nil, fmt.Errorf("%w: %s: min %v greater than max %v", ErrInvalidSpec, name, params.Min, params.Max)
	}
	switch params.Distribution {
	case "":
		params.Distribution = Uniform
	case Uniform:
	case Normal:
		if !finite(params.Mean) || !finite(params.StdDev) {
			return nil, fmt.Errorf("%w: %s: mean and stddev must be finite", ErrInvalidSpec, name)
		}
		if params.StdDev < 0 {
			return nil, fmt.Errorf("%w: %s: negative stddev", ErrInvalidSpec, name)
		}
	default:
		return nil, fmt.Errorf("%w: %s: unknown distribution %q", ErrInvalidSpec, name, params.Distribution)
	}
	if params.Integer && math.Ceil(params.Min) > math.Floor(params.Max) {
		return nil, fmt.Errorf("%w: %s: no integer in [%v, %v]", ErrInvalidSpec, name, params.Min, params.Max)
	}
	return &NumericAttribute{base: b, rng: rngFromSeed(opts.Seed), params: params}, nil
}

// Next draws a number.
func (a *NumericAttribute) Next() (string, error) {
	return a.draw(a.sample, nil)
}

func (a *NumericAttribute) sample() (string, error) {
	p := a.params
	var v float64
	if p.Distribution == Normal {
		v = a.rng.NormFloat64()*p.StdDev + p.Mean
	} else {
		r := a.rng.Float64()
		v = p.Min*(1-r) + p.Max*r // Max-Min may overflow
	}
	v = min(max(v, p.Min), p.Max)
	if p.Integer {
		v = min(max(math.Round(v), math.Ceil(p.Min)), math.Floor(p.Max))
		if v == 0 {
			v = 0 // no "-0"
		}
		return strconv.FormatFloat(v, 'f', 0, 64), nil
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
