package attribute

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/regen"
)

// PatternAttribute draws values from a compiled pattern.
type PatternAttribute struct {
	base
	pattern *regen.Pattern
	gen     *regen.Generator

	// exclude matches any excluded substring; nil when nothing is excluded.
	exclude *ahocorasick.Automaton
}

// NewPatternAttribute compiles pattern and returns an attribute drawing from
// it. Values containing any of the exclude substrings are redrawn.
// A repeatLimit of zero selects the generator default.
func NewPatternAttribute(name, pattern string, exclude []string, repeatLimit int, opts Options) (*PatternAttribute, error) {
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	p, err := regen.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, name, err)
	}
	config := regen.DefaultConfig()
	config.Seed = opts.Seed
	if repeatLimit != 0 {
		config.RepeatLimit = repeatLimit
	}
	g, err := p.NewGenerator(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, name, err)
	}

	a := &PatternAttribute{base: b, pattern: p, gen: g}
	if len(exclude) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, s := range exclude {
			if s == "" {
				return nil, fmt.Errorf("%w: %s: empty exclusion", ErrInvalidSpec, name)
			}
			builder.AddPattern([]byte(s))
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, name, err)
		}
		a.exclude = auto
	}
	return a, nil
}

// Pattern returns the compiled pattern.
func (a *PatternAttribute) Pattern() *regen.Pattern {
	return a.pattern
}

// Next draws a value that avoids the excluded substrings.
func (a *PatternAttribute) Next() (string, error) {
	return a.draw(a.gen.Generate, a.allowed)
}

func (a *PatternAttribute) allowed(v string) bool {
	return a.exclude == nil || !a.exclude.IsMatch([]byte(v))
}
