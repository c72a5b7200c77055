// Package conv provides checked integer and code point conversions used by
// the pattern compiler and generator.
//
// Narrowing conversions panic on overflow since that indicates a programming
// error. Width arithmetic saturates instead, because repeat products of
// nested quantifiers legitimately exceed any fixed range.
package conv

import (
	"math"
	"unicode/utf8"
)

// MaxSaturated is the ceiling applied by SatAdd and SatMul.
const MaxSaturated = math.MaxInt32

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// CodePoint converts a decoded escape value to a rune.
// It reports false for negative values, surrogate halves and values above
// utf8.MaxRune.
func CodePoint(n int64) (rune, bool) {
	if n < 0 || n > utf8.MaxRune {
		return utf8.RuneError, false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return utf8.RuneError, false
	}
	return r, true
}

// SatAdd returns a+b clamped to [0, MaxSaturated].
// Both operands must be non-negative.
func SatAdd(a, b int) int {
	if a >= MaxSaturated || b >= MaxSaturated || a > MaxSaturated-b {
		return MaxSaturated
	}
	return a + b
}

// SatMul returns a*b clamped to [0, MaxSaturated].
// Both operands must be non-negative.
func SatMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > MaxSaturated/b {
		return MaxSaturated
	}
	return a * b
}
