package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, one-node-per-line listing of sub to w, in the
// layout of Python's sre_parse debug output.
func Dump(w io.Writer, sub Subpattern) error {
	d := &dumper{w: w}
	d.seq(sub, 0)
	return d.err
}

// String returns the Dump listing of the tree.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = Dump(&sb, t.Root)
	return sb.String()
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(level int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", level)}, args...)...)
}

func (d *dumper) seq(sub Subpattern, level int) {
	for _, nd := range sub {
		d.node(nd, level)
	}
}

func (d *dumper) node(nd Node, level int) {
	switch n := nd.(type) {
	case *Literal:
		d.line(level, "%s %d", n.Op(), n.Char)
	case *NotLiteral:
		d.line(level, "%s %d", n.Op(), n.Char)
	case *Range:
		d.line(level, "%s (%d, %d)", n.Op(), n.Lo, n.Hi)
	case *Any:
		d.line(level, "%s None", n.Op())
	case *Category:
		d.line(level, "%s %s", n.Op(), n.Code)
	case *At:
		d.line(level, "%s %s", n.Op(), n.Code)
	case *Class:
		if n.Negated {
			d.line(level, "%s NEGATE", n.Op())
		} else {
			d.line(level, "%s", n.Op())
		}
		for _, it := range n.Items {
			d.node(it, level+1)
		}
	case *Branch:
		d.line(level, "%s", n.Op())
		for i, alt := range n.Alts {
			if i > 0 {
				d.line(level, "OR")
			}
			d.seq(alt, level+1)
		}
	case *Group:
		id := "None"
		if n.ID != NoGroup {
			id = fmt.Sprint(n.ID + 1)
		}
		d.line(level, "%s %s %d %d", n.Op(), id, n.AddFlags, n.DelFlags)
		d.seq(n.Body, level+1)
	case *GroupRef:
		d.line(level, "%s %d", n.Op(), n.ID+1)
	case *GroupRefExists:
		d.line(level, "%s %d", n.Op(), n.ID+1)
		d.seq(n.Yes, level+1)
		if n.No != nil {
			d.line(level, "ELSE")
			d.seq(n.No, level+1)
		}
	case *Assert:
		dir := 1
		if n.Behind {
			dir = -1
		}
		d.line(level, "%s %d", n.Op(), dir)
		d.seq(n.Body, level+1)
	case *Repeat:
		hi := fmt.Sprint(n.Max)
		if n.Max == MaxRepeat {
			hi = "MAXREPEAT"
		}
		d.line(level, "%s %d %s", n.Op(), n.Min, hi)
		d.seq(n.Body, level+1)
	default:
		d.line(level, "%T", nd)
	}
}
