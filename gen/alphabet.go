package gen

import "github.com/coregx/regen/syntax"

// Character tables, in the order of Python's string module.
const (
	digits      = "0123456789"
	lowercase   = "abcdefghijklmnopqrstuvwxyz"
	uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace  = " \t\n\r\x0b\x0c"

	// punctuation without the underscore, which is a word character.
	symbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"
)

// alphabet is an indexable table of candidate characters.
type alphabet []rune

var (
	// printable is the universe for '.' and negated literals.
	printable = alphabet(digits + lowercase + uppercase + punctuation + whitespace)

	categoryTables = map[syntax.CategoryCode]alphabet{
		syntax.CategoryDigit:    alphabet(digits),
		syntax.CategoryNotDigit: alphabet(lowercase + uppercase + punctuation),
		syntax.CategorySpace:    alphabet(whitespace),
		syntax.CategoryNotSpace: alphabet(digits + lowercase + uppercase + punctuation),
		syntax.CategoryWord:     alphabet(digits + lowercase + uppercase + "_"),
		syntax.CategoryNotWord:  alphabet(symbols + whitespace),
	}
)

// surrogateLo and surrogateHi bound the UTF-16 surrogate block, which holds
// no encodable characters.
const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

// rangeSize returns the number of encodable code points in [lo, hi].
func rangeSize(lo, hi rune) int {
	n := int(hi-lo) + 1
	if lo <= surrogateHi && hi >= surrogateLo {
		n -= int(min(hi, surrogateHi)-max(lo, surrogateLo)) + 1
	}
	return n
}

// rangeAt returns the i-th encodable code point of [lo, hi].
func rangeAt(lo, hi rune, i int) rune {
	r := lo + rune(i)
	if lo < surrogateLo && r >= surrogateLo {
		r += surrogateHi - surrogateLo + 1
	} else if lo >= surrogateLo && lo <= surrogateHi {
		r += surrogateHi - lo + 1
	}
	return r
}
