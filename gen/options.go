package gen

import (
	"math/rand"

	"github.com/coregx/regen/syntax"
)

// DefaultRepeatLimit caps the repeat count drawn for unbounded quantifiers.
const DefaultRepeatLimit = syntax.MaxRepeat

// defaultSeed is used when a seed of zero is requested.
const defaultSeed int64 = 1

// Option customizes a Generator.
type Option func(*Generator)

// WithRand makes the generator draw from r. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("gen: WithRand(nil)")
	}
	return func(g *Generator) {
		g.rng = r
	}
}

// WithSeed seeds a private random source. A zero seed selects a fixed
// default, so the output is reproducible either way.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rngFromSeed(seed)
	}
}

// WithRepeatLimit bounds repeat counts. Panics if limit < 1.
func WithRepeatLimit(limit int) Option {
	if limit < 1 {
		panic("gen: WithRepeatLimit(limit<1)")
	}
	return func(g *Generator) {
		g.repeatLimit = limit
	}
}

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
