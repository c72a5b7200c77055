package syntax

import "strings"

// unit is one lexical unit: a single rune or a backslash escape pair.
type unit struct {
	text string
	pos  int // rune offset in the pattern
}

// tokenizer is a cursor over the lexical units of a pattern.
//
// The pattern is split up front, so positions returned by tell are unit
// indexes and seek can rewind to any of them.
type tokenizer struct {
	pattern string
	units   []unit
	index   int // index of the unit returned by peek
}

func newTokenizer(pattern string) (*tokenizer, error) {
	runes := []rune(pattern)
	units := make([]unit, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			units = append(units, unit{text: string(runes[i]), pos: i})
			continue
		}
		if i+1 >= len(runes) {
			return nil, &Error{Pattern: pattern, Pos: i, Err: ErrBadEscape, Detail: "(end of pattern)"}
		}
		units = append(units, unit{text: string(runes[i : i+2]), pos: i})
		i++
	}
	return &tokenizer{pattern: pattern, units: units}, nil
}

// peek returns the current unit without consuming it, or "" at end of input.
func (t *tokenizer) peek() string {
	if t.index >= len(t.units) {
		return ""
	}
	return t.units[t.index].text
}

// peekRune returns the current unit's rune if it is a single rune.
func (t *tokenizer) peekRune() (rune, bool) {
	s := t.peek()
	if s == "" || s[0] == '\\' {
		return 0, false
	}
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// next advances past the current unit.
func (t *tokenizer) next() {
	if t.index < len(t.units) {
		t.index++
	}
}

// match consumes the current unit if it equals s.
func (t *tokenizer) match(s string) bool {
	if t.peek() == s && s != "" {
		t.next()
		return true
	}
	return false
}

// get consumes and returns the current unit, or "" at end of input.
func (t *tokenizer) get() string {
	s := t.peek()
	t.next()
	return s
}

// getWhile consumes up to n consecutive single-rune units drawn from set.
func (t *tokenizer) getWhile(n int, set runeSet) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, ok := t.peekRune()
		if !ok || !set(r) {
			break
		}
		sb.WriteRune(r)
		t.next()
	}
	return sb.String()
}

// getUntil consumes units up to and including terminator and returns the
// text before it. label names the expected text in error messages.
func (t *tokenizer) getUntil(terminator, label string) (string, error) {
	start := t.tell()
	var sb strings.Builder
	for {
		pos := t.pos()
		c := t.get()
		switch {
		case c == "":
			if sb.Len() == 0 {
				return "", t.errorAt(pos, ErrMissingName, label)
			}
			return "", t.errorAt(t.posOf(start), ErrUnterminatedName, "for "+label)
		case c == terminator:
			if sb.Len() == 0 {
				return "", t.errorAt(pos, ErrMissingName, label)
			}
			return sb.String(), nil
		}
		sb.WriteString(c)
	}
}

// tell returns the current position for a later seek.
func (t *tokenizer) tell() int {
	return t.index
}

// seek rewinds or advances to a position returned by tell.
func (t *tokenizer) seek(index int) {
	t.index = index
}

// pos returns the rune offset of the current unit.
func (t *tokenizer) pos() int {
	return t.posOf(t.index)
}

func (t *tokenizer) posOf(index int) int {
	if index < len(t.units) {
		return t.units[index].pos
	}
	return len([]rune(t.pattern))
}

// atEnd reports whether all input has been consumed.
func (t *tokenizer) atEnd() bool {
	return t.index >= len(t.units)
}

func (t *tokenizer) errorAt(pos int, err error, detail string) *Error {
	return &Error{Pattern: t.pattern, Pos: pos, Err: err, Detail: detail}
}
