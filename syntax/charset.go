package syntax

// specialChars is a table of metacharacters outside of a character class.
var specialChars = [128]bool{
	'.':  true,
	'\\': true,
	'[':  true,
	'{':  true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	'?':  true,
	'^':  true,
	'$':  true,
	'|':  true,
}

// repeatChars start a quantifier.
var repeatChars = [128]bool{
	'*': true,
	'+': true,
	'?': true,
	'{': true,
}

// runeSet is a membership predicate over single runes.
type runeSet func(r rune) bool

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpecial(unit string) bool {
	return len(unit) == 1 && specialChars[unit[0]]
}

func isRepeat(unit string) bool {
	return len(unit) == 1 && repeatChars[unit[0]]
}

// isIdentifier reports whether name is usable as a group name.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || isASCIILetter(r):
		case i > 0 && isDigit(r):
		case r >= 0x80:
			// Non-ASCII letters are accepted as in str.isidentifier.
		default:
			return false
		}
	}
	return true
}

// escapes maps two-character escapes to the literal they stand for.
var escapes = map[string]rune{
	`\a`: '\a',
	`\b`: '\b',
	`\f`: '\f',
	`\n`: '\n',
	`\r`: '\r',
	`\t`: '\t',
	`\v`: '\v',
	`\\`: '\\',
}

// anchorEscapes maps escapes to anchor codes.
var anchorEscapes = map[string]AtCode{
	`\A`: AtBeginningString,
	`\b`: AtBoundary,
	`\B`: AtNonBoundary,
	`\Z`: AtEndString,
}

// categoryEscapes maps escapes to character categories.
var categoryEscapes = map[string]CategoryCode{
	`\d`: CategoryDigit,
	`\D`: CategoryNotDigit,
	`\s`: CategorySpace,
	`\S`: CategoryNotSpace,
	`\w`: CategoryWord,
	`\W`: CategoryNotWord,
}

// category returns a new anchor or single-category class for esc.
// Nodes are allocated per call so trees never share them.
func category(esc string) (Node, bool) {
	if code, ok := anchorEscapes[esc]; ok {
		return &At{Code: code}, true
	}
	if code, ok := categoryEscapes[esc]; ok {
		return &Class{Items: []Node{&Category{Code: code}}}, true
	}
	return nil, false
}

// flagLetters maps inline flag letters to flag bits.
var flagLetters = map[rune]Flags{
	'a': FlagASCII,
	'i': FlagIgnoreCase,
	'L': FlagLocale,
	'm': FlagMultiline,
	's': FlagDotAll,
	'u': FlagUnicode,
	'x': FlagVerbose,
}
