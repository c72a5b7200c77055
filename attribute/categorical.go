package attribute

import (
	"fmt"
	"math/rand"
	"sort"
)

// Category is one value of a categorical attribute with its relative weight.
type Category struct {
	Value  string  `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// CategoricalAttribute picks among weighted values.
type CategoricalAttribute struct {
	base
	rng        *rand.Rand
	values     []string
	cumulative []float64
}

// NewCategoricalAttribute returns an attribute over categories. Weights must
// be positive and values distinct.
func NewCategoricalAttribute(name string, categories []Category, opts Options) (*CategoricalAttribute, error) {
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: %s: no categories", ErrInvalidSpec, name)
	}
	a := &CategoricalAttribute{base: b, rng: rngFromSeed(opts.Seed)}
	seen := make(map[string]bool, len(categories))
	sum := 0.0
	for _, c := range categories {
		if !(c.Weight > 0) {
			return nil, fmt.Errorf("%w: %s: category %q has non-positive weight", ErrInvalidSpec, name, c.Value)
		}
		if seen[c.Value] {
			return nil, fmt.Errorf("%w: %s: duplicate category %q", ErrInvalidSpec, name, c.Value)
		}
		seen[c.Value] = true
		sum += c.Weight
		a.values = append(a.values, c.Value)
		a.cumulative = append(a.cumulative, sum)
	}
	return a, nil
}

// Next picks a category: a uniform draw over the total weight selects the
// first category whose cumulative weight exceeds it.
func (a *CategoricalAttribute) Next() (string, error) {
	return a.draw(a.pick, nil)
}

func (a *CategoricalAttribute) pick() (string, error) {
	total := a.cumulative[len(a.cumulative)-1]
	r := a.rng.Float64() * total
	i := sort.Search(len(a.cumulative), func(i int) bool { return a.cumulative[i] > r })
	if i == len(a.cumulative) {
		i--
	}
	return a.values[i], nil
}
