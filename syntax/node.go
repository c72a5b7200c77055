package syntax

import "github.com/coregx/regen/internal/conv"

// Node is one element of a compiled pattern tree.
//
// The set of implementations is closed: Literal, NotLiteral, Range, Any,
// Category, At, Class, Branch, Group, GroupRef, GroupRefExists, Assert and
// Repeat. Consumers switch on the concrete type.
type Node interface {
	// Op returns the node kind.
	Op() Op

	// MinChars returns the minimum number of characters the node contributes.
	MinChars() int

	// MaxChars returns the maximum number of characters the node contributes.
	MaxChars() int

	node()
}

// Width is a (min, max) character count.
type Width struct {
	Min, Max int
}

// Subpattern is an ordered sequence of nodes. Order is generation order.
type Subpattern []Node

// MinChars returns the sum of the minimum widths of the nodes.
func (s Subpattern) MinChars() int {
	n := 0
	for _, nd := range s {
		n = conv.SatAdd(n, nd.MinChars())
	}
	return n
}

// MaxChars returns the sum of the maximum widths of the nodes.
func (s Subpattern) MaxChars() int {
	n := 0
	for _, nd := range s {
		n = conv.SatAdd(n, nd.MaxChars())
	}
	return n
}

// Width returns the (min, max) width of the sequence.
func (s Subpattern) Width() Width {
	return Width{Min: s.MinChars(), Max: s.MaxChars()}
}

// Literal is a single character.
type Literal struct {
	Char rune
}

// NotLiteral is any single character except Char.
type NotLiteral struct {
	Char rune
}

// Range is a single character in [Lo, Hi].
type Range struct {
	Lo, Hi rune
}

// Any is the wildcard '.'.
type Any struct{}

// Category is a shorthand class such as \d.
type Category struct {
	Code CategoryCode
}

// At is a zero-width anchor.
type At struct {
	Code AtCode
}

// Class is a character class union. Items are Literal, Range or Category
// nodes. A negated class parses but cannot be generated.
type Class struct {
	Negated bool
	Items   []Node
}

// Branch is an alternation.
type Branch struct {
	Alts []Subpattern
}

// Group wraps a parenthesized subpattern. ID is NoGroup for non-capturing
// groups; AddFlags and DelFlags hold scoped inline flags.
type Group struct {
	ID       int
	Name     string
	AddFlags Flags
	DelFlags Flags
	Body     Subpattern
}

// Transparent reports whether the group neither captures nor carries flags.
func (g *Group) Transparent() bool {
	return g.ID == NoGroup && g.AddFlags == 0 && g.DelFlags == 0
}

// GroupRef replays the text realized by group ID. Width is the referenced
// group's width, fixed when the group closed.
type GroupRef struct {
	ID    int
	Width Width
}

// GroupRefExists is the conditional (?(id)yes|no). No is nil when absent.
type GroupRefExists struct {
	ID  int
	Yes Subpattern
	No  Subpattern
}

// Assert is a lookaround assertion.
type Assert struct {
	Behind bool
	Negate bool
	Body   Subpattern
}

// Repeat repeats Body between Min and Max times. Max is MaxRepeat for
// unbounded quantifiers.
type Repeat struct {
	Min, Max int
	Lazy     bool
	Body     Subpattern
}

func (*Literal) Op() Op        { return OpLiteral }
func (*NotLiteral) Op() Op     { return OpNotLiteral }
func (*Range) Op() Op          { return OpRange }
func (*Any) Op() Op            { return OpAny }
func (*Category) Op() Op       { return OpCategory }
func (*At) Op() Op             { return OpAt }
func (*Class) Op() Op          { return OpIn }
func (*Branch) Op() Op         { return OpBranch }
func (*Group) Op() Op          { return OpSubpattern }
func (*GroupRef) Op() Op       { return OpGroupRef }
func (*GroupRefExists) Op() Op { return OpGroupRefExists }

func (a *Assert) Op() Op {
	if a.Negate {
		return OpAssertNot
	}
	return OpAssert
}

func (r *Repeat) Op() Op {
	if r.Lazy {
		return OpMinRepeat
	}
	return OpMaxRepeat
}

func (*Literal) MinChars() int    { return 1 }
func (*Literal) MaxChars() int    { return 1 }
func (*NotLiteral) MinChars() int { return 1 }
func (*NotLiteral) MaxChars() int { return 1 }
func (*Range) MinChars() int      { return 1 }
func (*Range) MaxChars() int      { return 1 }
func (*Any) MinChars() int        { return 1 }
func (*Any) MaxChars() int        { return 1 }
func (*Category) MinChars() int   { return 1 }
func (*Category) MaxChars() int   { return 1 }
func (*At) MinChars() int         { return 0 }
func (*At) MaxChars() int         { return 0 }

func (c *Class) MinChars() int {
	if len(c.Items) == 0 {
		return 0
	}
	n := MaxWidth
	for _, it := range c.Items {
		n = min(n, it.MinChars())
	}
	return n
}

func (c *Class) MaxChars() int {
	n := 0
	for _, it := range c.Items {
		n = max(n, it.MaxChars())
	}
	return n
}

func (b *Branch) MinChars() int {
	if len(b.Alts) == 0 {
		return 0
	}
	n := MaxWidth
	for _, alt := range b.Alts {
		n = min(n, alt.MinChars())
	}
	return n
}

func (b *Branch) MaxChars() int {
	n := 0
	for _, alt := range b.Alts {
		n = max(n, alt.MaxChars())
	}
	return n
}

func (g *Group) MinChars() int { return g.Body.MinChars() }
func (g *Group) MaxChars() int { return g.Body.MaxChars() }

func (g *GroupRef) MinChars() int { return g.Width.Min }
func (g *GroupRef) MaxChars() int { return g.Width.Max }

func (g *GroupRefExists) MinChars() int {
	if g.No == nil {
		return 0
	}
	return min(g.Yes.MinChars(), g.No.MinChars())
}

func (g *GroupRefExists) MaxChars() int {
	return max(g.Yes.MaxChars(), g.No.MaxChars())
}

// A positive assertion contributes its body, since the generator emits it.
func (a *Assert) MinChars() int {
	if a.Negate {
		return 0
	}
	return a.Body.MinChars()
}

func (a *Assert) MaxChars() int {
	if a.Negate {
		return 0
	}
	return a.Body.MaxChars()
}

func (r *Repeat) MinChars() int { return conv.SatMul(r.Min, r.Body.MinChars()) }
func (r *Repeat) MaxChars() int { return conv.SatMul(r.Max, r.Body.MaxChars()) }

func (*Literal) node()        {}
func (*NotLiteral) node()     {}
func (*Range) node()          {}
func (*Any) node()            {}
func (*Category) node()       {}
func (*At) node()             {}
func (*Class) node()          {}
func (*Branch) node()         {}
func (*Group) node()          {}
func (*GroupRef) node()       {}
func (*GroupRefExists) node() {}
func (*Assert) node()         {}
func (*Repeat) node()         {}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && *x == *y
	case *NotLiteral:
		y, ok := b.(*NotLiteral)
		return ok && *x == *y
	case *Range:
		y, ok := b.(*Range)
		return ok && *x == *y
	case *Any:
		_, ok := b.(*Any)
		return ok
	case *Category:
		y, ok := b.(*Category)
		return ok && *x == *y
	case *At:
		y, ok := b.(*At)
		return ok && *x == *y
	case *Class:
		y, ok := b.(*Class)
		return ok && x.Negated == y.Negated && equalNodes(x.Items, y.Items)
	case *Branch:
		y, ok := b.(*Branch)
		if !ok || len(x.Alts) != len(y.Alts) {
			return false
		}
		for i := range x.Alts {
			if !EqualSubpatterns(x.Alts[i], y.Alts[i]) {
				return false
			}
		}
		return true
	case *Group:
		y, ok := b.(*Group)
		return ok && x.ID == y.ID && x.Name == y.Name &&
			x.AddFlags == y.AddFlags && x.DelFlags == y.DelFlags &&
			EqualSubpatterns(x.Body, y.Body)
	case *GroupRef:
		y, ok := b.(*GroupRef)
		return ok && *x == *y
	case *GroupRefExists:
		y, ok := b.(*GroupRefExists)
		return ok && x.ID == y.ID && (x.No == nil) == (y.No == nil) &&
			EqualSubpatterns(x.Yes, y.Yes) && EqualSubpatterns(x.No, y.No)
	case *Assert:
		y, ok := b.(*Assert)
		return ok && x.Behind == y.Behind && x.Negate == y.Negate &&
			EqualSubpatterns(x.Body, y.Body)
	case *Repeat:
		y, ok := b.(*Repeat)
		return ok && x.Min == y.Min && x.Max == y.Max && x.Lazy == y.Lazy &&
			EqualSubpatterns(x.Body, y.Body)
	}
	return false
}

// EqualSubpatterns reports whether two sequences are structurally identical.
func EqualSubpatterns(a, b Subpattern) bool {
	return equalNodes(a, b)
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// appendUnique appends nd to set unless a structurally equal node is present.
func appendUnique(set []Node, nd Node) []Node {
	for _, have := range set {
		if Equal(have, nd) {
			return set
		}
	}
	return append(set, nd)
}
