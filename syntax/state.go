package syntax

// state is the mutable bookkeeping of one Parse call.
type state struct {
	flags      Flags
	groupNames map[string]int
	widths     []Width // indexed by group id
	closed     []bool  // indexed by group id

	// lookbehind is the number of groups that were open or closed when the
	// outermost active lookbehind began, or -1 outside lookbehinds.
	lookbehind int

	// condRefs are conditional references to groups that did not exist yet,
	// mapped to the rune offset of the reference.
	condRefs map[int]int
}

func newState(flags Flags) *state {
	return &state{
		flags:      flags,
		groupNames: make(map[string]int),
		lookbehind: -1,
		condRefs:   make(map[int]int),
	}
}

// groups returns the number of groups opened so far.
func (s *state) groups() int {
	return len(s.widths)
}

// openGroup allocates the next group id, registering name if non-empty.
func (s *state) openGroup(name string) (int, error) {
	gid := s.groups()
	if gid >= MaxGroups {
		return 0, ErrTooManyGroups
	}
	if name != "" {
		if _, ok := s.groupNames[name]; ok {
			return 0, ErrGroupRedefined
		}
		s.groupNames[name] = gid
	}
	s.widths = append(s.widths, Width{})
	s.closed = append(s.closed, false)
	return gid, nil
}

// closeGroup records the width of a group whose closing parenthesis was seen.
func (s *state) closeGroup(gid int, body Subpattern) {
	s.widths[gid] = body.Width()
	s.closed[gid] = true
}

// checkGroup reports whether gid names a closed group.
func (s *state) checkGroup(gid int) bool {
	return gid >= 0 && gid < s.groups() && s.closed[gid]
}

// checkLookbehindGroup rejects references from inside a lookbehind to groups
// that are open or were opened within the lookbehind itself.
func (s *state) checkLookbehindGroup(gid int) error {
	if s.lookbehind < 0 {
		return nil
	}
	if !s.checkGroup(gid) {
		return ErrOpenGroupRef
	}
	if gid >= s.lookbehind {
		return ErrLookbehindGroupRef
	}
	return nil
}

// fixFlags applies the default character-set flag and rejects incompatible
// combinations.
func (s *state) fixFlags() error {
	if s.flags&FlagLocale != 0 {
		return ErrLocaleFlag
	}
	if s.flags&FlagASCII == 0 {
		s.flags |= FlagUnicode
	} else if s.flags&FlagUnicode != 0 {
		return ErrIncompatibleFlags
	}
	return nil
}
