package syntax

import (
	"strings"

	"github.com/coregx/regen/internal/conv"
)

// Flags is the compile flag word. The bit values follow the sre convention.
type Flags uint32

// Possible flags for the flag parameter.
const (
	FlagTemplate   Flags = 1 << iota // TEMPLATE; unused
	FlagIgnoreCase                   // i
	FlagLocale                       // L
	FlagMultiline                    // m
	FlagDotAll                       // s
	FlagUnicode                      // u
	FlagVerbose                      // x
	FlagDebug                        // DEBUG; unused
	FlagASCII                        // a
)

// typeFlags are the mutually exclusive character-set interpretation flags.
const typeFlags = FlagASCII | FlagLocale | FlagUnicode

// String returns the inline letters for the flags that have one.
func (f Flags) String() string {
	var sb strings.Builder
	for _, fl := range flagOrder {
		if f&fl.flag != 0 {
			sb.WriteRune(fl.letter)
		}
	}
	return sb.String()
}

var flagOrder = []struct {
	letter rune
	flag   Flags
}{
	{'a', FlagASCII},
	{'i', FlagIgnoreCase},
	{'L', FlagLocale},
	{'m', FlagMultiline},
	{'s', FlagDotAll},
	{'u', FlagUnicode},
	{'x', FlagVerbose},
}

// Limits.
const (
	// MaxRepeat stands in for an unbounded repeat upper bound.
	// Explicit {m,n} bounds must be strictly below it.
	MaxRepeat = 999

	// MaxGroups caps the number of capture groups in one pattern.
	MaxGroups = 1000

	// MaxWidth is the saturation point of width arithmetic.
	MaxWidth = conv.MaxSaturated

	// MaxNesting bounds the depth of nested groups and alternations.
	MaxNesting = 500
)

// NoGroup is the group id of a non-capturing group wrapper.
const NoGroup = -1

// Op identifies a node kind.
type Op uint8

// Node kinds.
const (
	OpAny Op = iota + 1
	OpAssert
	OpAssertNot
	OpAt
	OpBranch
	OpCategory
	OpGroupRef
	OpGroupRefExists
	OpIn
	OpLiteral
	OpMinRepeat
	OpMaxRepeat
	OpNotLiteral
	OpRange
	OpSubpattern
)

var opNames = [...]string{
	OpAny:            "ANY",
	OpAssert:         "ASSERT",
	OpAssertNot:      "ASSERT_NOT",
	OpAt:             "AT",
	OpBranch:         "BRANCH",
	OpCategory:       "CATEGORY",
	OpGroupRef:       "GROUPREF",
	OpGroupRefExists: "GROUPREF_EXISTS",
	OpIn:             "IN",
	OpLiteral:        "LITERAL",
	OpMinRepeat:      "MIN_REPEAT",
	OpMaxRepeat:      "MAX_REPEAT",
	OpNotLiteral:     "NOT_LITERAL",
	OpRange:          "RANGE",
	OpSubpattern:     "SUBPATTERN",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP_UNKNOWN"
}

// AtCode identifies an anchor.
type AtCode uint8

// Anchors.
const (
	AtBeginning       AtCode = iota // AT_BEGINNING
	AtBeginningString               // AT_BEGINNING_STRING
	AtBoundary                      // AT_BOUNDARY
	AtNonBoundary                   // AT_NON_BOUNDARY
	AtEnd                           // AT_END
	AtEndString                     // AT_END_STRING
)

var atNames = [...]string{
	AtBeginning:       "AT_BEGINNING",
	AtBeginningString: "AT_BEGINNING_STRING",
	AtBoundary:        "AT_BOUNDARY",
	AtNonBoundary:     "AT_NON_BOUNDARY",
	AtEnd:             "AT_END",
	AtEndString:       "AT_END_STRING",
}

func (c AtCode) String() string {
	if int(c) < len(atNames) {
		return atNames[c]
	}
	return "AT_UNKNOWN"
}

// CategoryCode identifies a shorthand character class.
type CategoryCode uint8

// Categories.
const (
	CategoryDigit    CategoryCode = iota // CATEGORY_DIGIT
	CategoryNotDigit                     // CATEGORY_NOT_DIGIT
	CategorySpace                        // CATEGORY_SPACE
	CategoryNotSpace                     // CATEGORY_NOT_SPACE
	CategoryWord                         // CATEGORY_WORD
	CategoryNotWord                      // CATEGORY_NOT_WORD
)

var categoryNames = [...]string{
	CategoryDigit:    "CATEGORY_DIGIT",
	CategoryNotDigit: "CATEGORY_NOT_DIGIT",
	CategorySpace:    "CATEGORY_SPACE",
	CategoryNotSpace: "CATEGORY_NOT_SPACE",
	CategoryWord:     "CATEGORY_WORD",
	CategoryNotWord:  "CATEGORY_NOT_WORD",
}

func (c CategoryCode) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "CATEGORY_UNKNOWN"
}
