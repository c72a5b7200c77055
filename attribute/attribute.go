// Package attribute produces synthetic node attribute values.
//
// Three kinds of attribute are supported: pattern attributes draw strings
// from a regen pattern, categorical attributes pick one of a weighted set of
// values, and numeric attributes draw from a uniform or clamped normal
// distribution. Attributes are declared in YAML (see LoadSpecs) and their
// values are written as id,name,value CSV records by Emit.
//
// Every attribute owns its random source; an Attribute is not safe for
// concurrent use.
package attribute

import (
	"errors"
	"fmt"
)

// DefaultMaxAttempts bounds the draws spent on finding a value that passes
// an attribute's filters.
const DefaultMaxAttempts = 100

var (
	// ErrAttemptsExhausted indicates that no acceptable value was drawn
	// within the attempt budget.
	ErrAttemptsExhausted = errors.New("attribute: attempts exhausted")

	// ErrInvalidSpec indicates an attribute declaration that cannot be built.
	ErrInvalidSpec = errors.New("attribute: invalid spec")
)

// Attribute produces one value per call to Next.
type Attribute interface {
	// Name returns the attribute name written in each record.
	Name() string

	// Required reports whether every value must be non-empty.
	Required() bool

	// Unique reports whether values never repeat.
	Unique() bool

	// Next draws the next value.
	Next() (string, error)
}

// Options are the settings shared by every attribute kind.
type Options struct {
	Required bool
	Unique   bool

	// Seed seeds the attribute's random source; zero selects a fixed default.
	Seed int64

	// MaxAttempts bounds the draws per value. Zero means DefaultMaxAttempts.
	MaxAttempts int
}

// base implements the common attribute bookkeeping and filtering.
type base struct {
	name        string
	required    bool
	unique      bool
	maxAttempts int
	seen        map[string]struct{}
}

func newBase(name string, opts Options) (base, error) {
	if name == "" {
		return base{}, fmt.Errorf("%w: empty name", ErrInvalidSpec)
	}
	if opts.MaxAttempts < 0 {
		return base{}, fmt.Errorf("%w: %s: negative max attempts", ErrInvalidSpec, name)
	}
	b := base{
		name:        name,
		required:    opts.Required,
		unique:      opts.Unique,
		maxAttempts: opts.MaxAttempts,
	}
	if b.maxAttempts == 0 {
		b.maxAttempts = DefaultMaxAttempts
	}
	if b.unique {
		b.seen = make(map[string]struct{})
	}
	return b, nil
}

func (b *base) Name() string   { return b.name }
func (b *base) Required() bool { return b.required }
func (b *base) Unique() bool   { return b.unique }

// draw calls next until it yields a value that passes accept and the
// required and unique filters.
func (b *base) draw(next func() (string, error), accept func(string) bool) (string, error) {
	for range b.maxAttempts {
		v, err := next()
		if err != nil {
			return "", fmt.Errorf("attribute %s: %w", b.name, err)
		}
		if b.required && v == "" {
			continue
		}
		if accept != nil && !accept(v) {
			continue
		}
		if b.unique {
			if _, dup := b.seen[v]; dup {
				continue
			}
			b.seen[v] = struct{}{}
		}
		return v, nil
	}
	return "", fmt.Errorf("attribute %s: %w after %d draws", b.name, ErrAttemptsExhausted, b.maxAttempts)
}
