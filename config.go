package regen

import (
	"github.com/coregx/regen/gen"
	"github.com/coregx/regen/syntax"
)

// Config controls string generation.
//
// Example:
//
//	config := regen.DefaultConfig()
//	config.RepeatLimit = 10 // keep a* and a+ short
//	config.Seed = 42
//	g, err := regen.MustCompile(`[a-z]+`).NewGenerator(config)
type Config struct {
	// RepeatLimit caps the count drawn for a repeat whose upper bound is
	// larger, such as * and +. A repeat never produces fewer copies than
	// its lower bound.
	// Default: 999
	RepeatLimit int

	// Seed seeds the generator's random source. Zero selects a fixed
	// default seed, so generation is always reproducible.
	// Default: 0
	Seed int64
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		RepeatLimit: gen.DefaultRepeatLimit,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - RepeatLimit: 1 to 999
func (c Config) Validate() error {
	if c.RepeatLimit < 1 || c.RepeatLimit > syntax.MaxRepeat {
		return &ConfigError{
			Field:   "RepeatLimit",
			Message: "must be between 1 and 999",
		}
	}
	return nil
}

// options translates the configuration into generator options.
func (c Config) options() []gen.Option {
	return []gen.Option{
		gen.WithRepeatLimit(c.RepeatLimit),
		gen.WithSeed(c.Seed),
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regen: invalid config: " + e.Field + ": " + e.Message
}
