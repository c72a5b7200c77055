package syntax

import (
	"sort"
	"strconv"
	"unicode/utf8"
)

// Tree is a compiled pattern. It is immutable once Parse returns and may be
// shared between goroutines.
type Tree struct {
	Pattern     string
	Flags       Flags
	Root        Subpattern
	GroupWidths []Width        // indexed by group id
	GroupNames  map[string]int // name -> group id
}

// NumGroups returns the number of capture groups.
func (t *Tree) NumGroups() int {
	return len(t.GroupWidths)
}

// SubexpNames returns the name of each capture group by id; unnamed groups
// have an empty name.
func (t *Tree) SubexpNames() []string {
	names := make([]string, len(t.GroupWidths))
	for name, gid := range t.GroupNames {
		names[gid] = name
	}
	return names
}

// MinChars returns the minimum length of any string the tree can derive.
func (t *Tree) MinChars() int { return t.Root.MinChars() }

// MaxChars returns the maximum length of any string the tree can derive,
// saturated at MaxWidth.
func (t *Tree) MaxChars() int { return t.Root.MaxChars() }

// parser is a recursive-descent compiler from pattern text to a Tree.
type parser struct {
	src *tokenizer
	st  *state
}

// Parse compiles pattern into a syntax tree.
//
// Errors are returned as *Error wrapping one of the Err* sentinels.
func Parse(pattern string, flags Flags) (*Tree, error) {
	src, err := newTokenizer(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, st: newState(flags)}

	root, err := p.parseSub(0)
	if err != nil {
		return nil, err
	}

	if err := p.st.fixFlags(); err != nil {
		return nil, &Error{Pattern: pattern, Pos: -1, Err: err}
	}

	if !p.src.atEnd() {
		// parseSub only stops early on ')'.
		return nil, p.src.errorAt(p.src.pos(), ErrUnbalancedParen, "")
	}

	if err := p.checkCondRefs(); err != nil {
		return nil, err
	}

	return &Tree{
		Pattern:     pattern,
		Flags:       p.st.flags,
		Root:        root,
		GroupWidths: p.st.widths,
		GroupNames:  p.st.groupNames,
	}, nil
}

// checkCondRefs rejects conditionals naming groups that never appeared.
func (p *parser) checkCondRefs() error {
	var bad []int
	for gid := range p.st.condRefs {
		if gid >= p.st.groups() {
			bad = append(bad, gid)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Ints(bad)
	gid := bad[0]
	return p.src.errorAt(p.st.condRefs[gid], ErrInvalidGroupRef, strconv.Itoa(gid+1))
}

// parseSub parses an alternation a|b|c.
func (p *parser) parseSub(nested int) (Subpattern, error) {
	if nested > MaxNesting {
		return nil, p.src.errorAt(p.src.pos(), ErrTooDeep, "")
	}

	var items []Subpattern
	for {
		item, err := p.parse(nested + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.src.match("|") {
			break
		}
	}

	if len(items) == 1 {
		return items[0], nil
	}

	// Move a prefix shared by every alternative out of the branch.
	var sub Subpattern
	for {
		var prefix Node
		shared := true
		for _, item := range items {
			if len(item) == 0 {
				shared = false
				break
			}
			if prefix == nil {
				prefix = item[0]
			} else if !Equal(item[0], prefix) {
				shared = false
				break
			}
		}
		if !shared {
			break
		}
		for i := range items {
			items[i] = items[i][1:]
		}
		sub = append(sub, prefix)
	}

	if set, ok := coalesceClass(items); ok {
		return append(sub, &Class{Items: set}), nil
	}

	return append(sub, &Branch{Alts: items}), nil
}

// coalesceClass merges alternatives that are each a single literal or
// non-negated class into one class.
func coalesceClass(items []Subpattern) ([]Node, bool) {
	var set []Node
	for _, item := range items {
		if len(item) != 1 {
			return nil, false
		}
		switch nd := item[0].(type) {
		case *Literal:
			set = appendUnique(set, nd)
		case *Class:
			if nd.Negated {
				return nil, false
			}
			for _, it := range nd.Items {
				set = appendUnique(set, it)
			}
		default:
			return nil, false
		}
	}
	return set, true
}

// parse parses a simple pattern up to end of input, '|' or ')'.
func (p *parser) parse(nested int) (Subpattern, error) {
	var sub Subpattern
	for {
		this := p.src.peek()
		if this == "" || this == "|" || this == ")" {
			break
		}
		pos := p.src.pos()
		p.src.next()

		var (
			nd  Node
			err error
		)
		switch {
		case this[0] == '\\':
			nd, err = p.escape(this, pos)
		case !isSpecial(this):
			r, _ := utf8.DecodeRuneInString(this)
			nd = &Literal{Char: r}
		case this == "[":
			nd, err = p.parseClass(pos)
		case isRepeat(this):
			sub, err = p.parseRepeat(sub, this, pos)
		case this == ".":
			nd = &Any{}
		case this == "(":
			nd, err = p.parseGroup(nested, pos)
		case this == "^":
			nd = &At{Code: AtBeginning}
		default: // "$"
			nd = &At{Code: AtEnd}
		}
		if err != nil {
			return nil, err
		}
		if nd != nil {
			sub = append(sub, nd)
		}
	}
	return unpackGroups(sub), nil
}

// unpackGroups splices the bodies of transparent groups into sub.
func unpackGroups(sub Subpattern) Subpattern {
	found := false
	for _, nd := range sub {
		if g, ok := nd.(*Group); ok && g.Transparent() {
			found = true
			break
		}
	}
	if !found {
		return sub
	}
	out := make(Subpattern, 0, len(sub))
	for _, nd := range sub {
		if g, ok := nd.(*Group); ok && g.Transparent() {
			out = append(out, g.Body...)
			continue
		}
		out = append(out, nd)
	}
	return out
}

// parseClass parses a character class after its opening '['.
func (p *parser) parseClass(start int) (Node, error) {
	var set []Node
	negate := p.src.match("^")
	first := p.src.tell()
	for {
		itemPos := p.src.pos()
		atFirst := p.src.tell() == first
		this := p.src.get()
		if this == "" {
			return nil, p.src.errorAt(start, ErrUnterminatedClass, "")
		}
		if this == "]" && !atFirst {
			break
		}

		code1, err := p.classItem(this, itemPos)
		if err != nil {
			return nil, err
		}

		if !p.src.match("-") {
			set = appendUnique(set, unwrapClass(code1))
			continue
		}

		// Potential range.
		thatPos := p.src.pos()
		that := p.src.get()
		if that == "" {
			return nil, p.src.errorAt(start, ErrUnterminatedClass, "")
		}
		if that == "]" {
			set = appendUnique(set, unwrapClass(code1))
			set = appendUnique(set, &Literal{Char: '-'})
			break
		}
		code2, err := p.classItem(that, thatPos)
		if err != nil {
			return nil, err
		}
		lo, ok1 := code1.(*Literal)
		hi, ok2 := code2.(*Literal)
		if !ok1 || !ok2 || hi.Char < lo.Char {
			return nil, p.src.errorAt(itemPos, ErrBadRange, this+"-"+that)
		}
		set = appendUnique(set, &Range{Lo: lo.Char, Hi: hi.Char})
	}

	// A negated single literal stays a negated class; NotLiteral is only
	// produced by callers building trees directly.
	if len(set) == 1 && !negate {
		if lit, ok := set[0].(*Literal); ok {
			return lit, nil
		}
	}
	return &Class{Negated: negate, Items: set}, nil
}

func (p *parser) classItem(this string, pos int) (Node, error) {
	if this[0] == '\\' {
		return p.classEscape(this, pos)
	}
	r, _ := utf8.DecodeRuneInString(this)
	return &Literal{Char: r}, nil
}

// unwrapClass turns a single-category class from an escape into its category.
func unwrapClass(nd Node) Node {
	if c, ok := nd.(*Class); ok && len(c.Items) == 1 {
		return c.Items[0]
	}
	return nd
}

// parseRepeat applies the quantifier this to the last node of sub.
func (p *parser) parseRepeat(sub Subpattern, this string, pos int) (Subpattern, error) {
	here := p.src.tell()
	var lo, hi int
	switch this {
	case "?":
		lo, hi = 0, 1
	case "*":
		lo, hi = 0, MaxRepeat
	case "+":
		lo, hi = 1, MaxRepeat
	default: // "{"
		if p.src.peek() == "}" {
			return append(sub, &Literal{Char: '{'}), nil
		}
		lo, hi = 0, MaxRepeat
		loText := p.src.getWhile(MaxWidth, isDigit)
		hiText := loText
		if p.src.match(",") {
			hiText = p.src.getWhile(MaxWidth, isDigit)
		}
		if !p.src.match("}") {
			p.src.seek(here)
			return append(sub, &Literal{Char: '{'}), nil
		}
		if loText != "" {
			n, err := strconv.Atoi(loText)
			if err != nil || n >= MaxRepeat {
				return nil, p.src.errorAt(pos, ErrRepeatTooLarge, loText)
			}
			lo = n
		}
		if hiText != "" {
			n, err := strconv.Atoi(hiText)
			if err != nil || n >= MaxRepeat {
				return nil, p.src.errorAt(pos, ErrRepeatTooLarge, hiText)
			}
			hi = n
			if hi < lo {
				return nil, p.src.errorAt(pos, ErrMinGreaterThanMax, "")
			}
		}
	}

	if len(sub) == 0 {
		return nil, p.src.errorAt(pos, ErrNothingToRepeat, "")
	}
	last := sub[len(sub)-1]
	switch item := last.(type) {
	case *At:
		return nil, p.src.errorAt(pos, ErrNothingToRepeat, "")
	case *Repeat:
		return nil, p.src.errorAt(pos, ErrMultipleRepeat, "")
	case *Group:
		if item.Transparent() {
			lazy := p.src.match("?")
			sub[len(sub)-1] = &Repeat{Min: lo, Max: hi, Lazy: lazy, Body: item.Body}
			return sub, nil
		}
	}
	lazy := p.src.match("?")
	sub[len(sub)-1] = &Repeat{Min: lo, Max: hi, Lazy: lazy, Body: Subpattern{last}}
	return sub, nil
}

// parseGroup parses a parenthesized construct after its opening '('.
// It returns a nil node for constructs that contribute nothing.
func (p *parser) parseGroup(nested, start int) (Node, error) {
	capture := true
	var (
		name               string
		addFlags, delFlags Flags
	)

	if p.src.match("?") {
		charPos := p.src.pos()
		char := p.src.get()
		if char == "" {
			return nil, p.src.errorAt(charPos, ErrUnexpectedEnd, "")
		}
		switch char {
		case "P":
			namePos := p.src.pos()
			switch {
			case p.src.match("<"):
				var err error
				name, err = p.src.getUntil(">", "group name")
				if err != nil {
					return nil, err
				}
				if !isIdentifier(name) {
					return nil, p.src.errorAt(namePos, ErrBadGroupName, name)
				}
			case p.src.match("="):
				ref, err := p.src.getUntil(")", "group name")
				if err != nil {
					return nil, err
				}
				if !isIdentifier(ref) {
					return nil, p.src.errorAt(namePos, ErrBadGroupName, ref)
				}
				gid, ok := p.st.groupNames[ref]
				if !ok {
					return nil, p.src.errorAt(namePos, ErrUnknownGroupName, ref)
				}
				return p.groupRef(gid, namePos, ref)
			default:
				c := p.src.get()
				if c == "" {
					return nil, p.src.errorAt(namePos, ErrUnexpectedEnd, "")
				}
				return nil, p.src.errorAt(charPos, ErrUnknownExtension, "?P"+c)
			}
		case ":":
			capture = false
		case "#":
			for {
				if p.src.atEnd() {
					return nil, p.src.errorAt(start, ErrUnterminatedComment, "")
				}
				if p.src.get() == ")" {
					return nil, nil
				}
			}
		case "=", "!", "<":
			return p.parseLookaround(char, nested, start)
		case "(":
			return p.parseConditional(nested, start)
		default:
			r, _ := utf8.DecodeRuneInString(char)
			if _, ok := flagLetters[r]; !ok && char != "-" {
				return nil, p.src.errorAt(charPos, ErrUnknownExtension, "?"+char)
			}
			add, del, scoped, err := p.parseFlags(char, charPos)
			if err != nil {
				return nil, err
			}
			if !scoped {
				p.st.flags |= add
				return nil, nil
			}
			addFlags, delFlags = add, del
			capture = false
		}
	}

	gid := NoGroup
	if capture {
		var err error
		gid, err = p.st.openGroup(name)
		if err != nil {
			return nil, p.src.errorAt(start, err, name)
		}
	}
	body, err := p.parseSub(nested + 1)
	if err != nil {
		return nil, err
	}
	if !p.src.match(")") {
		return nil, p.src.errorAt(start, ErrMissingParen, "")
	}
	if capture {
		p.st.closeGroup(gid, body)
	}
	return &Group{ID: gid, Name: name, AddFlags: addFlags, DelFlags: delFlags, Body: body}, nil
}

// groupRef builds a backreference to gid after checking it is legal here.
func (p *parser) groupRef(gid, pos int, detail string) (Node, error) {
	if !p.st.checkGroup(gid) {
		return nil, p.src.errorAt(pos, ErrOpenGroupRef, detail)
	}
	if err := p.st.checkLookbehindGroup(gid); err != nil {
		return nil, p.src.errorAt(pos, err, detail)
	}
	return &GroupRef{ID: gid, Width: p.st.widths[gid]}, nil
}

// parseLookaround parses (?=...), (?!...), (?<=...) and (?<!...) after the
// character following '?'.
func (p *parser) parseLookaround(char string, nested, start int) (Node, error) {
	behind := false
	fenced := false
	if char == "<" {
		pos := p.src.pos()
		char = p.src.get()
		if char == "" {
			return nil, p.src.errorAt(pos, ErrUnexpectedEnd, "")
		}
		if char != "=" && char != "!" {
			return nil, p.src.errorAt(pos, ErrUnknownExtension, "?<"+char)
		}
		behind = true
		if p.st.lookbehind < 0 {
			p.st.lookbehind = p.st.groups()
			fenced = true
		}
	}

	body, err := p.parseSub(nested + 1)
	if fenced {
		p.st.lookbehind = -1
	}
	if err != nil {
		return nil, err
	}
	if !p.src.match(")") {
		return nil, p.src.errorAt(start, ErrMissingParen, "")
	}
	return &Assert{Behind: behind, Negate: char == "!", Body: body}, nil
}

// parseConditional parses (?(id-or-name)yes|no) after "(?(".
func (p *parser) parseConditional(nested, start int) (Node, error) {
	namePos := p.src.pos()
	condName, err := p.src.getUntil(")", "group name")
	if err != nil {
		return nil, err
	}

	var gid int
	if isIdentifier(condName) {
		id, ok := p.st.groupNames[condName]
		if !ok {
			return nil, p.src.errorAt(namePos, ErrUnknownGroupName, condName)
		}
		gid = id
	} else {
		n, err := strconv.Atoi(condName)
		if err != nil || n < 0 {
			return nil, p.src.errorAt(namePos, ErrBadGroupName, condName)
		}
		if n == 0 {
			return nil, p.src.errorAt(namePos, ErrBadGroupNumber, condName)
		}
		if n >= MaxGroups {
			return nil, p.src.errorAt(namePos, ErrInvalidGroupRef, condName)
		}
		gid = n - 1
		if _, seen := p.st.condRefs[gid]; !seen && gid >= p.st.groups() {
			p.st.condRefs[gid] = namePos
		}
	}
	if err := p.st.checkLookbehindGroup(gid); err != nil {
		return nil, p.src.errorAt(namePos, err, condName)
	}

	yes, err := p.parse(nested + 1)
	if err != nil {
		return nil, err
	}
	var no Subpattern
	if p.src.match("|") {
		no, err = p.parse(nested + 1)
		if err != nil {
			return nil, err
		}
		if no == nil {
			no = Subpattern{}
		}
		if p.src.peek() == "|" {
			return nil, p.src.errorAt(p.src.pos(), ErrCondBranches, "")
		}
	}
	if !p.src.match(")") {
		return nil, p.src.errorAt(start, ErrMissingParen, "")
	}
	return &GroupRefExists{ID: gid, Yes: yes, No: no}, nil
}

// parseFlags parses inline flags starting at char. scoped is false for a
// global (?flags) group, which is consumed entirely.
func (p *parser) parseFlags(char string, pos int) (add, del Flags, scoped bool, err error) {
	flagOf := func(s string) (Flags, bool) {
		r, _ := utf8.DecodeRuneInString(s)
		f, ok := flagLetters[r]
		return f, ok && utf8.RuneLen(r) == len(s)
	}

	if char != "-" {
		for {
			flag, _ := flagOf(char)
			if flag == FlagLocale {
				return 0, 0, false, p.src.errorAt(pos, ErrLocaleFlag, "")
			}
			add |= flag
			if flag&typeFlags != 0 && add&typeFlags != flag {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "flags 'a', 'u' and 'L' are incompatible")
			}
			pos = p.src.pos()
			char = p.src.get()
			if char == "" {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "missing -, : or )")
			}
			if char == ")" || char == "-" || char == ":" {
				break
			}
			if _, ok := flagOf(char); !ok {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "unknown flag "+char)
			}
		}
	}
	if char == ")" {
		return add, 0, false, nil
	}

	if char == "-" {
		pos = p.src.pos()
		char = p.src.get()
		if _, ok := flagOf(char); !ok {
			return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "missing flag")
		}
		for {
			flag, _ := flagOf(char)
			if flag&typeFlags != 0 {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "cannot turn off flags 'a', 'u' and 'L'")
			}
			del |= flag
			pos = p.src.pos()
			char = p.src.get()
			if char == "" {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "missing :")
			}
			if char == ":" {
				break
			}
			if _, ok := flagOf(char); !ok {
				return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "unknown flag "+char)
			}
		}
	}

	if add&del != 0 {
		return 0, 0, false, p.src.errorAt(pos, ErrBadFlags, "flag turned on and off")
	}
	return add, del, true, nil
}
