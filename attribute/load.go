package attribute

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Attribute kinds in a Spec.
const (
	KindPattern     = "pattern"
	KindCategorical = "categorical"
	KindNumeric     = "numeric"
)

// File is a YAML attribute declaration file.
//
//	seed: 7
//	nodes: 100
//	first_id: 0
//	attributes:
//	  - name: email
//	    type: pattern
//	    pattern: '[a-z]{3,8}@example\.com'
//	    exclude: [admin, root]
//	    unique: true
//	  - name: color
//	    type: categorical
//	    categories:
//	      - {value: red, weight: 2}
//	      - {value: green, weight: 1}
//	  - name: age
//	    type: numeric
//	    min: 0
//	    max: 99
//	    distribution: normal
//	    mean: 40
//	    stddev: 12
//	    integer: true
type File struct {
	Seed       int64  `yaml:"seed"`
	Nodes      int    `yaml:"nodes"`
	FirstID    int    `yaml:"first_id"`
	Attributes []Spec `yaml:"attributes"`
}

// Spec declares one attribute. Fields not used by its Type must be left
// unset.
type Spec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Unique      bool   `yaml:"unique"`
	MaxAttempts int    `yaml:"max_attempts"`

	// pattern
	Pattern     string   `yaml:"pattern"`
	Exclude     []string `yaml:"exclude"`
	RepeatLimit int      `yaml:"repeat_limit"`

	// categorical
	Categories []Category `yaml:"categories"`

	// numeric
	Min          *float64 `yaml:"min"`
	Max          *float64 `yaml:"max"`
	Distribution string   `yaml:"distribution"`
	Mean         float64  `yaml:"mean"`
	StdDev       float64  `yaml:"stddev"`
	Integer      bool     `yaml:"integer"`
}

// LoadSpecs decodes a declaration file. Unknown keys are rejected.
func LoadSpecs(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSpec)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if f.Nodes < 0 {
		return nil, fmt.Errorf("%w: negative node count", ErrInvalidSpec)
	}
	names := make(map[string]bool, len(f.Attributes))
	for i, s := range f.Attributes {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: attribute %d has no name", ErrInvalidSpec, i)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("%w: duplicate attribute %q", ErrInvalidSpec, s.Name)
		}
		names[s.Name] = true
	}
	return &f, nil
}

// Build constructs the attribute a spec declares.
func Build(spec Spec, seed int64) (Attribute, error) {
	opts := Options{
		Required:    spec.Required,
		Unique:      spec.Unique,
		Seed:        seed,
		MaxAttempts: spec.MaxAttempts,
	}
	switch spec.Type {
	case KindPattern:
		return NewPatternAttribute(spec.Name, spec.Pattern, spec.Exclude, spec.RepeatLimit, opts)
	case KindCategorical:
		return NewCategoricalAttribute(spec.Name, spec.Categories, opts)
	case KindNumeric:
		if spec.Min == nil || spec.Max == nil {
			return nil, fmt.Errorf("%w: %s: numeric attributes need min and max", ErrInvalidSpec, spec.Name)
		}
		return NewNumericAttribute(spec.Name, NumericParams{
			Min:          *spec.Min,
			Max:          *spec.Max,
			Distribution: spec.Distribution,
			Mean:         spec.Mean,
			StdDev:       spec.StdDev,
			Integer:      spec.Integer,
		}, opts)
	}
	return nil, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidSpec, spec.Name, spec.Type)
}

// BuildAll builds every attribute of f. Each attribute gets its own seed
// derived from the file seed and its position.
func BuildAll(f *File) ([]Attribute, error) {
	attrs := make([]Attribute, 0, len(f.Attributes))
	for i, spec := range f.Attributes {
		a, err := Build(spec, deriveSeed(f.Seed, uint64(i)))
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}
