package syntax

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"github.com/coregx/regen/internal/conv"
)

// escape decodes an escape unit outside a character class.
func (p *parser) escape(esc string, pos int) (Node, error) {
	if nd, ok := category(esc); ok {
		return nd, nil
	}
	if r, ok := escapes[esc]; ok {
		return &Literal{Char: r}, nil
	}

	c := escapeRune(esc)
	switch {
	case c == 'x':
		return p.hexEscape(esc, 2, pos)
	case c == 'u':
		return p.hexEscape(esc, 4, pos)
	case c == 'U':
		return p.hexEscape(esc, 8, pos)
	case c == 'N':
		return p.namedEscape(esc, pos)
	case c == '0':
		digits := p.src.getWhile(2, isOctDigit)
		return p.octalEscape("0"+digits, pos)
	case isDigit(c):
		// Octal escape *or* decimal group reference.
		text := string(c)
		if r, ok := p.src.peekRune(); ok && isDigit(r) {
			text += string(r)
			p.src.next()
			if isOctDigit(c) && isOctDigit(r) {
				if r3, ok := p.src.peekRune(); ok && isOctDigit(r3) {
					// Three octal digits; this is an octal escape.
					p.src.next()
					return p.octalEscape(text+string(r3), pos)
				}
			}
		}
		n, _ := strconv.Atoi(text)
		gid := n - 1
		if gid < p.st.groups() {
			return p.groupRef(gid, pos, `\`+text)
		}
		return nil, p.src.errorAt(pos, ErrInvalidGroupRef, `\`+text)
	case isASCIILetter(c):
		return nil, p.src.errorAt(pos, ErrBadEscape, esc)
	}
	return &Literal{Char: c}, nil
}

// classEscape decodes an escape unit inside a character class.
func (p *parser) classEscape(esc string, pos int) (Node, error) {
	if r, ok := escapes[esc]; ok {
		return &Literal{Char: r}, nil
	}
	if code, ok := categoryEscapes[esc]; ok {
		return &Class{Items: []Node{&Category{Code: code}}}, nil
	}

	c := escapeRune(esc)
	switch {
	case c == 'x':
		return p.hexEscape(esc, 2, pos)
	case c == 'u':
		return p.hexEscape(esc, 4, pos)
	case c == 'U':
		return p.hexEscape(esc, 8, pos)
	case c == 'N':
		return p.namedEscape(esc, pos)
	case isOctDigit(c):
		digits := p.src.getWhile(2, isOctDigit)
		return p.octalEscape(string(c)+digits, pos)
	case isDigit(c), isASCIILetter(c):
		return nil, p.src.errorAt(pos, ErrBadEscape, esc)
	}
	return &Literal{Char: c}, nil
}

// escapeRune returns the rune following the backslash.
func escapeRune(esc string) rune {
	r, _ := utf8.DecodeRuneInString(esc[1:])
	return r
}

// hexEscape reads exactly n hex digits after esc.
func (p *parser) hexEscape(esc string, n, pos int) (Node, error) {
	digits := p.src.getWhile(n, isHexDigit)
	if len(digits) != n {
		return nil, p.src.errorAt(pos, ErrIncompleteEscape, esc+digits)
	}
	v, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		return nil, p.src.errorAt(pos, ErrBadEscape, esc+digits)
	}
	r, ok := conv.CodePoint(v)
	if !ok {
		return nil, p.src.errorAt(pos, ErrBadEscape, esc+digits)
	}
	return &Literal{Char: r}, nil
}

// octalEscape decodes up to three octal digits.
func (p *parser) octalEscape(digits string, pos int) (Node, error) {
	v, err := strconv.ParseInt(digits, 8, 32)
	if err != nil {
		return nil, p.src.errorAt(pos, ErrBadEscape, `\`+digits)
	}
	if v > 0o377 {
		return nil, p.src.errorAt(pos, ErrOctalRange, `\`+digits)
	}
	return &Literal{Char: rune(v)}, nil
}

// namedEscape decodes \N{CHARACTER NAME}.
func (p *parser) namedEscape(esc string, pos int) (Node, error) {
	if !p.src.match("{") {
		return nil, p.src.errorAt(p.src.pos(), ErrMissingName, "{")
	}
	name, err := p.src.getUntil("}", "character name")
	if err != nil {
		return nil, err
	}
	r, ok := lookupRuneName(name)
	if !ok {
		return nil, p.src.errorAt(pos, ErrUndefinedCharName, esc+"{"+name+"}")
	}
	return &Literal{Char: r}, nil
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// lookupRuneName resolves a Unicode character name, ignoring case.
// The reverse table is built on first use. CJK unified ideographs are
// named by code point and resolved without the table.
func lookupRuneName(name string) (rune, bool) {
	name = strings.ToUpper(name)
	if hex, ok := strings.CutPrefix(name, cjkPrefix); ok {
		return cjkIdeograph(hex)
	}
	runeNamesOnce.Do(buildRuneNames)
	r, ok := runeNames[name]
	return r, ok
}

func buildRuneNames() {
	runeNames = make(map[string]rune, 1<<16)
	for r := rune(0); r <= utf8.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		n := runenames.Name(r)
		if n == "" || n[0] == '<' {
			continue
		}
		if _, dup := runeNames[n]; !dup {
			runeNames[n] = r
		}
	}
	for i := range hangulCount {
		runeNames[hangulName(i)] = hangulBase + rune(i)
	}
}

const cjkPrefix = "CJK UNIFIED IDEOGRAPH-"

func cjkIdeograph(hex string) (rune, bool) {
	if len(hex) != 4 && len(hex) != 5 {
		return 0, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(n)
	if !strings.HasPrefix(runenames.Name(r), "<CJK Ideograph") {
		return 0, false
	}
	return r, true
}

// Hangul syllables are named from their jamo: U+AC00 + (L*21+V)*28 + T.
const (
	hangulBase  = 0xAC00
	hangulCount = 19 * 21 * 28
)

var (
	hangulLeads  = []string{"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H"}
	hangulVowels = []string{"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I"}
	hangulTails  = []string{"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H"}
)

func hangulName(i int) string {
	return "HANGUL SYLLABLE " + hangulLeads[i/(21*28)] + hangulVowels[i/28%21] + hangulTails[i%28]
}
