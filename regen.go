// Package regen generates random strings that match a regular expression.
//
// Patterns use the Python re dialect: groups, named groups,
// backreferences, lookaround, conditionals, inline flags and the usual
// escapes. A pattern is compiled once into an immutable tree; any number
// of generators can then walk it, each with its own seeded random source.
//
// Basic usage:
//
//	p, err := regen.Compile(`(?P<area>[0-9]{3})-[0-9]{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, _ := p.NewGenerator(regen.DefaultConfig())
//	s, _ := g.Generate() // e.g. "415-0923"
//
// Generated text is not checked against anchors or lookaround: anchors
// contribute nothing, positive lookaround emits its body and negative
// lookaround emits nothing. Negated classes and conditional
// backreferences compile but fail at generation time.
package regen

import (
	"io"

	"github.com/coregx/regen/gen"
	"github.com/coregx/regen/syntax"
)

// Flags are compile flags. Inline flag groups in the pattern set the same
// bits.
type Flags = syntax.Flags

// Compile flags.
const (
	FlagIgnoreCase = syntax.FlagIgnoreCase
	FlagMultiline  = syntax.FlagMultiline
	FlagDotAll     = syntax.FlagDotAll
	FlagUnicode    = syntax.FlagUnicode
	FlagVerbose    = syntax.FlagVerbose
	FlagASCII      = syntax.FlagASCII
)

// Generator produces strings from a compiled pattern. It is not safe for
// concurrent use; create one per goroutine.
type Generator = gen.Generator

// Pattern is a compiled pattern.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines.
type Pattern struct {
	tree *syntax.Tree
}

// Compile parses a pattern.
//
// Example:
//
//	p, err := regen.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileFlags(pattern, 0)
}

// CompileFlags parses a pattern with the given flags.
func CompileFlags(pattern string, flags Flags) (*Pattern, error) {
	tree, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, err
	}
	return &Pattern{tree: tree}, nil
}

// MustCompile parses a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("regen: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.tree.Pattern
}

// Tree returns the parsed tree. It must not be modified.
func (p *Pattern) Tree() *syntax.Tree {
	return p.tree
}

// Flags returns the effective flags after inline flags were applied.
func (p *Pattern) Flags() Flags {
	return p.tree.Flags
}

// MinLen returns the minimum number of characters a generated string has.
func (p *Pattern) MinLen() int {
	return p.tree.MinChars()
}

// MaxLen returns the maximum number of characters a generated string can
// have, saturated at syntax.MaxWidth.
func (p *Pattern) MaxLen() int {
	return p.tree.MaxChars()
}

// NumGroups returns the number of capture groups.
func (p *Pattern) NumGroups() int {
	return p.tree.NumGroups()
}

// SubexpNames returns the names of the capture groups, in group order.
// Unnamed groups have an empty name.
func (p *Pattern) SubexpNames() []string {
	return p.tree.SubexpNames()
}

// Dump writes the parsed tree to w, one node per line.
func (p *Pattern) Dump(w io.Writer) error {
	return syntax.Dump(w, p.tree.Root)
}

// NewGenerator returns a generator over the pattern.
func (p *Pattern) NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return gen.New(p.tree, config.options()...), nil
}

// Generate compiles pattern and produces one string from it.
func Generate(pattern string, config Config) (string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	g, err := p.NewGenerator(config)
	if err != nil {
		return "", err
	}
	return g.Generate()
}

// QuoteMeta returns a string that escapes all pattern metacharacters
// inside the argument text; the returned pattern generates exactly the
// literal text.
//
// Example:
//
//	escaped := regen.QuoteMeta("1.5+x")
//	// escaped = `1\.5\+x`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
