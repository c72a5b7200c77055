// Package gen produces random strings from a parsed pattern tree.
//
// A Generator walks the tree depth first and concatenates what each node
// contributes: literals verbatim, classes and categories by a random draw,
// repeats by a random count bounded by the repeat limit, and
// backreferences by replaying the text its group produced earlier in the
// same invocation.
//
// Anchors contribute nothing, positive lookaround emits its body, and
// negative lookaround emits nothing; no generated text is checked against
// assertions. Lazy and greedy repeats sample identically.
package gen

import (
	"math/rand"
	"strings"

	"github.com/coregx/regen/internal/conv"
	"github.com/coregx/regen/internal/sparse"
	"github.com/coregx/regen/syntax"
)

// Generator produces strings from one tree.
//
// The tree is only read and may be shared. A Generator owns its random
// source and capture table and is not safe for concurrent use.
type Generator struct {
	tree        *syntax.Tree
	rng         *rand.Rand
	repeatLimit int

	// captures[id] is valid only while realized contains id.
	captures []string
	realized *sparse.SparseSet
}

// New returns a generator for tree. Without options it uses the default
// seed and DefaultRepeatLimit.
func New(tree *syntax.Tree, opts ...Option) *Generator {
	n := tree.NumGroups()
	g := &Generator{
		tree:        tree,
		repeatLimit: DefaultRepeatLimit,
		captures:    make([]string, n),
		realized:    sparse.NewSparseSet(conv.IntToUint32(n)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rngFromSeed(0)
	}
	return g
}

// Tree returns the tree the generator walks.
func (g *Generator) Tree() *syntax.Tree {
	return g.tree
}

// RepeatLimit returns the bound applied to repeat counts.
func (g *Generator) RepeatLimit() int {
	return g.repeatLimit
}

// Generate produces one string. Captures from earlier calls are discarded
// first, so a backreference only sees groups realized in this call.
func (g *Generator) Generate() (string, error) {
	g.realized.Clear()
	var sb strings.Builder
	if err := g.seq(&sb, g.tree.Root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Capture returns the text group id produced in the last Generate call.
func (g *Generator) Capture(id int) (string, bool) {
	if id < 0 || id >= len(g.captures) || !g.realized.Contains(uint32(id)) {
		return "", false
	}
	return g.captures[id], true
}

func (g *Generator) seq(sb *strings.Builder, sub syntax.Subpattern) error {
	for _, nd := range sub {
		if err := g.node(sb, nd); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) node(sb *strings.Builder, nd syntax.Node) error {
	switch n := nd.(type) {
	case *syntax.Literal:
		sb.WriteRune(n.Char)
	case *syntax.NotLiteral:
		sb.WriteRune(g.printableExcept(n.Char))
	case *syntax.Any:
		sb.WriteRune(g.printableExcept('\n'))
	case *syntax.Range:
		sb.WriteRune(rangeAt(n.Lo, n.Hi, g.rng.Intn(rangeSize(n.Lo, n.Hi))))
	case *syntax.Category:
		table, ok := categoryTables[n.Code]
		if !ok {
			return &Error{Op: n.Op(), Err: ErrUnknownCategory}
		}
		sb.WriteRune(table[g.rng.Intn(len(table))])
	case *syntax.At:
	case *syntax.Class:
		return g.class(sb, n)
	case *syntax.Branch:
		if len(n.Alts) == 0 {
			return nil
		}
		return g.seq(sb, n.Alts[g.rng.Intn(len(n.Alts))])
	case *syntax.Group:
		start := sb.Len()
		if err := g.seq(sb, n.Body); err != nil {
			return err
		}
		if n.ID != syntax.NoGroup {
			g.captures[n.ID] = sb.String()[start:]
			g.realized.Insert(conv.IntToUint32(n.ID))
		}
	case *syntax.GroupRef:
		text, ok := g.Capture(n.ID)
		if !ok {
			return &Error{Op: n.Op(), Err: ErrUnrealizedGroup}
		}
		sb.WriteString(text)
	case *syntax.Assert:
		if n.Negate {
			return nil
		}
		return g.seq(sb, n.Body)
	case *syntax.Repeat:
		hi := max(n.Min, min(n.Max, g.repeatLimit))
		count := n.Min + g.rng.Intn(hi-n.Min+1)
		for range count {
			if err := g.seq(sb, n.Body); err != nil {
				return err
			}
		}
	default:
		return &Error{Op: nd.Op(), Err: ErrUnexpectedNode}
	}
	return nil
}

// class draws one member with probability proportional to its MinChars,
// then generates it.
func (g *Generator) class(sb *strings.Builder, c *syntax.Class) error {
	if c.Negated {
		return &Error{Op: c.Op(), Err: ErrNegatedClass}
	}
	if len(c.Items) == 0 {
		return nil
	}
	cumulative := make([]int, len(c.Items))
	total := 0
	for i, it := range c.Items {
		total = conv.SatAdd(total, it.MinChars())
		cumulative[i] = total
	}
	if total == 0 {
		return nil
	}
	r := g.rng.Intn(total)
	for i, w := range cumulative {
		if r < w {
			return g.node(sb, c.Items[i])
		}
	}
	return g.node(sb, c.Items[len(c.Items)-1])
}

func (g *Generator) printableExcept(r rune) rune {
	for {
		c := printable[g.rng.Intn(len(printable))]
		if c != r {
			return c
		}
	}
}
