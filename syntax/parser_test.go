package syntax

import (
	"errors"
	"strings"
	"testing"
)

func lit(r rune) *Literal { return &Literal{Char: r} }

func lits(s string) Subpattern {
	var sub Subpattern
	for _, r := range s {
		sub = append(sub, lit(r))
	}
	return sub
}

func TestParseStructure(t *testing.T) {
	tests := []struct {
		pattern string
		want    Subpattern
	}{
		{"", nil},
		{"abc", lits("abc")},
		{"a|b|c", Subpattern{&Class{Items: []Node{lit('a'), lit('b'), lit('c')}}}},
		{"ab|ac", Subpattern{lit('a'), &Class{Items: []Node{lit('b'), lit('c')}}}},
		{"abc|abd", Subpattern{lit('a'), lit('b'), &Class{Items: []Node{lit('c'), lit('d')}}}},
		{"a|b|a", Subpattern{&Class{Items: []Node{lit('a'), lit('b')}}}},
		{"a|[bc]", Subpattern{&Class{Items: []Node{lit('a'), lit('b'), lit('c')}}}},
		{"a|", Subpattern{&Branch{Alts: []Subpattern{lits("a"), nil}}}},
		{"ab|cd", Subpattern{&Branch{Alts: []Subpattern{lits("ab"), lits("cd")}}}},
		{"[a-c]", Subpattern{&Class{Items: []Node{&Range{Lo: 'a', Hi: 'c'}}}}},
		{"[a]", Subpattern{lit('a')}},
		{"[^a]", Subpattern{&Class{Negated: true, Items: []Node{lit('a')}}}},
		{"[^ab]", Subpattern{&Class{Negated: true, Items: []Node{lit('a'), lit('b')}}}},
		{"[]a]", Subpattern{&Class{Items: []Node{lit(']'), lit('a')}}}},
		{"[a-]", Subpattern{&Class{Items: []Node{lit('a'), lit('-')}}}},
		{"[aa]", Subpattern{lit('a')}},
		{`[\d_]`, Subpattern{&Class{Items: []Node{&Category{Code: CategoryDigit}, lit('_')}}}},
		{`[\b]`, Subpattern{lit('\b')}},
		{`\d`, Subpattern{&Class{Items: []Node{&Category{Code: CategoryDigit}}}}},
		{`\b`, Subpattern{&At{Code: AtBoundary}}},
		{`\A\Z`, Subpattern{&At{Code: AtBeginningString}, &At{Code: AtEndString}}},
		{"^.$", Subpattern{&At{Code: AtBeginning}, &Any{}, &At{Code: AtEnd}}},
		{"(?:ab)c", lits("abc")},
		{"(?:ab)*", Subpattern{&Repeat{Min: 0, Max: MaxRepeat, Body: lits("ab")}}},
		{"a+", Subpattern{&Repeat{Min: 1, Max: MaxRepeat, Body: lits("a")}}},
		{"a?", Subpattern{&Repeat{Min: 0, Max: 1, Body: lits("a")}}},
		{"a+?", Subpattern{&Repeat{Min: 1, Max: MaxRepeat, Lazy: true, Body: lits("a")}}},
		{"a{3}", Subpattern{&Repeat{Min: 3, Max: 3, Body: lits("a")}}},
		{"a{2,5}", Subpattern{&Repeat{Min: 2, Max: 5, Body: lits("a")}}},
		{"a{,5}", Subpattern{&Repeat{Min: 0, Max: 5, Body: lits("a")}}},
		{"a{3,}", Subpattern{&Repeat{Min: 3, Max: MaxRepeat, Body: lits("a")}}},
		{"a{}", lits("a{}")},
		{"a{x", lits("a{x")},
		{"a{1,2", lits("a{1,2")},
		{"(a)", Subpattern{&Group{ID: 0, Body: lits("a")}}},
		{"(a)*", Subpattern{&Repeat{Min: 0, Max: MaxRepeat, Body: Subpattern{&Group{ID: 0, Body: lits("a")}}}}},
		{"(a)\\1", Subpattern{&Group{ID: 0, Body: lits("a")}, &GroupRef{ID: 0, Width: Width{1, 1}}}},
		{"(?P<n>ab)(?P=n)", Subpattern{
			&Group{ID: 0, Name: "n", Body: lits("ab")},
			&GroupRef{ID: 0, Width: Width{2, 2}},
		}},
		{"(?i:a)", Subpattern{&Group{ID: NoGroup, AddFlags: FlagIgnoreCase, Body: lits("a")}}},
		{"(?s-i:a)", Subpattern{&Group{ID: NoGroup, AddFlags: FlagDotAll, DelFlags: FlagIgnoreCase, Body: lits("a")}}},
		{"(?#note)a", lits("a")},
		{"(?=ab)", Subpattern{&Assert{Body: lits("ab")}}},
		{"(?!ab)", Subpattern{&Assert{Negate: true, Body: lits("ab")}}},
		{"(?<=ab)", Subpattern{&Assert{Behind: true, Body: lits("ab")}}},
		{"(?<!ab)", Subpattern{&Assert{Behind: true, Negate: true, Body: lits("ab")}}},
		{"(a)(?(1)b|c)", Subpattern{
			&Group{ID: 0, Body: lits("a")},
			&GroupRefExists{ID: 0, Yes: lits("b"), No: lits("c")},
		}},
		{"(a)(?(1)b)", Subpattern{
			&Group{ID: 0, Body: lits("a")},
			&GroupRefExists{ID: 0, Yes: lits("b")},
		}},
		{"(a)(?(1)b|)", Subpattern{
			&Group{ID: 0, Body: lits("a")},
			&GroupRefExists{ID: 0, Yes: lits("b"), No: Subpattern{}},
		}},
		{`\x41é\U0001F600`, Subpattern{lit('A'), lit('é'), lit('😀')}},
		{`\0\012\101`, Subpattern{lit(0), lit('\n'), lit('A')}},
		{`\N{LATIN SMALL LETTER A}\N{greek small letter alpha}`, Subpattern{lit('a'), lit('α')}},
		{`\N{CJK UNIFIED IDEOGRAPH-4E00}\N{cjk unified ideograph-20000}`, Subpattern{lit(0x4E00), lit(0x20000)}},
		{`\N{HANGUL SYLLABLE GA}\N{HANGUL SYLLABLE HIH}`, Subpattern{lit(0xAC00), lit(0xD7A3)}},
		{`\.\*`, lits(".*")},
		{"é+", Subpattern{&Repeat{Min: 1, Max: MaxRepeat, Body: lits("é")}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern, 0)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if !EqualSubpatterns(tree.Root, tt.want) {
				var want strings.Builder
				_ = Dump(&want, tt.want)
				t.Errorf("Parse(%q) tree mismatch:\ngot:\n%s\nwant:\n%s", tt.pattern, tree, want.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		want    error
	}{
		{`a\`, 0, ErrBadEscape},
		{`\q`, 0, ErrBadEscape},
		{`[\q]`, 0, ErrBadEscape},
		{`[\8]`, 0, ErrBadEscape},
		{`\x4`, 0, ErrIncompleteEscape},
		{`\u12`, 0, ErrIncompleteEscape},
		{`\ud800`, 0, ErrBadEscape},
		{`\U00110000`, 0, ErrBadEscape},
		{`\400`, 0, ErrOctalRange},
		{`[\400]`, 0, ErrOctalRange},
		{`\N`, 0, ErrMissingName},
		{`\N{}`, 0, ErrMissingName},
		{`\N{LATIN`, 0, ErrUnterminatedName},
		{`\N{NO SUCH CHARACTER}`, 0, ErrUndefinedCharName},
		{`\N{CJK UNIFIED IDEOGRAPH-0041}`, 0, ErrUndefinedCharName},
		{`\N{CJK UNIFIED IDEOGRAPH-4E0}`, 0, ErrUndefinedCharName},
		{"[a", 0, ErrUnterminatedClass},
		{"[a-", 0, ErrUnterminatedClass},
		{"[z-a]", 0, ErrBadRange},
		{`[\d-z]`, 0, ErrBadRange},
		{"*a", 0, ErrNothingToRepeat},
		{"^*", 0, ErrNothingToRepeat},
		{"a**", 0, ErrMultipleRepeat},
		{"a*??", 0, ErrMultipleRepeat},
		{"a{999}", 0, ErrRepeatTooLarge},
		{"a{1,1000}", 0, ErrRepeatTooLarge},
		{"a{5,2}", 0, ErrMinGreaterThanMax},
		{"(a", 0, ErrMissingParen},
		{"(?:a", 0, ErrMissingParen},
		{"(?=a", 0, ErrMissingParen},
		{"a)", 0, ErrUnbalancedParen},
		{"(?P<a", 0, ErrUnterminatedName},
		{"(?P<>a)", 0, ErrMissingName},
		{"(?P<1a>x)", 0, ErrBadGroupName},
		{"(?P<n>a)(?P<n>b)", 0, ErrGroupRedefined},
		{"(?P=x)", 0, ErrUnknownGroupName},
		{"(?Px)", 0, ErrUnknownExtension},
		{`\1`, 0, ErrInvalidGroupRef},
		{`(a)\2`, 0, ErrInvalidGroupRef},
		{`(a\1)`, 0, ErrOpenGroupRef},
		{"(?P<n>a(?P=n))", 0, ErrOpenGroupRef},
		{`(?<=(a)\1)`, 0, ErrLookbehindGroupRef},
		{"(?(1)a|b)", 0, ErrInvalidGroupRef},
		{"(?(0)a)", 0, ErrBadGroupNumber},
		{"(?(x)a)", 0, ErrUnknownGroupName},
		{"(?(1x)a)", 0, ErrBadGroupName},
		{"(a)(?(1)b|c|d)", 0, ErrCondBranches},
		{"(?", 0, ErrUnexpectedEnd},
		{"(?<a)", 0, ErrUnknownExtension},
		{"(?z)", 0, ErrUnknownExtension},
		{"(?#abc", 0, ErrUnterminatedComment},
		{"(?L)a", 0, ErrLocaleFlag},
		{"(?au)a", 0, ErrBadFlags},
		{"(?i", 0, ErrBadFlags},
		{"(?-a:b)", 0, ErrBadFlags},
		{"(?i-i:b)", 0, ErrBadFlags},
		{"(?-:b)", 0, ErrBadFlags},
		{"a", FlagLocale, ErrLocaleFlag},
		{"a", FlagASCII | FlagUnicode, ErrIncompatibleFlags},
		{strings.Repeat("(a)", MaxGroups+1), 0, ErrTooManyGroups},
		{strings.Repeat("(", 300) + strings.Repeat(")", 300), 0, ErrTooDeep},
	}

	for _, tt := range tests {
		name := tt.pattern
		if len(name) > 32 {
			name = name[:32]
		}
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tt.pattern, tt.flags)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.pattern, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Errorf("Parse(%q) error is %T, want *Error", tt.pattern, err)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Parse("(a", 0)
	want := `error parsing pattern "(a" at position 0: missing ), unterminated subpattern`
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}

	_, err = Parse("ab)", 0)
	var perr *Error
	if !errors.As(err, &perr) || perr.Pos != 2 {
		t.Errorf("unbalanced paren error = %v, want position 2", err)
	}

	_, err = Parse("a", FlagLocale)
	want = `error parsing pattern "a": cannot use LOCALE flag with a str pattern`
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		want    Flags
	}{
		{"a", 0, FlagUnicode},
		{"a", FlagASCII, FlagASCII},
		{"(?i)a", 0, FlagIgnoreCase | FlagUnicode},
		{"(?ms)a", 0, FlagMultiline | FlagDotAll | FlagUnicode},
		{"(?a)a", 0, FlagASCII},
		{"a(?x)", FlagIgnoreCase, FlagIgnoreCase | FlagVerbose | FlagUnicode},
		{"(?i:a)", 0, FlagUnicode},
	}
	for _, tt := range tests {
		tree, err := Parse(tt.pattern, tt.flags)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
		}
		if tree.Flags != tt.want {
			t.Errorf("Parse(%q).Flags = %q, want %q", tt.pattern, tree.Flags, tt.want)
		}
	}
}

func TestFlagsString(t *testing.T) {
	f := FlagIgnoreCase | FlagMultiline | FlagASCII
	if got := f.String(); got != "aim" {
		t.Errorf("String() = %q, want %q", got, "aim")
	}
	if got := Flags(0).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		pattern  string
		min, max int
	}{
		{"", 0, 0},
		{"abc", 3, 3},
		{"a{2,5}", 2, 5},
		{"a*", 0, MaxRepeat},
		{"a+", 1, MaxRepeat},
		{"(a|bc)", 1, 2},
		{"[a-z]{3}", 3, 3},
		{"^$", 0, 0},
		{"(?=abc)", 3, 3},
		{"(?!abc)", 0, 0},
		{`(a)\1`, 2, 2},
		{`(a{1,3})\1`, 2, 6},
		{"(a)(?(1)bc|d)", 2, 3},
		{"(a)(?(1)bc)", 1, 3},
		{"(ab)*", 0, 2 * MaxRepeat},
		{"((a*)*)*", 0, MaxRepeat * MaxRepeat * MaxRepeat},
		{"(((a*)*)*)*", 0, MaxWidth},
	}
	for _, tt := range tests {
		tree, err := Parse(tt.pattern, 0)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
		}
		if got := tree.MinChars(); got != tt.min {
			t.Errorf("Parse(%q).MinChars() = %d, want %d", tt.pattern, got, tt.min)
		}
		if got := tree.MaxChars(); got != tt.max {
			t.Errorf("Parse(%q).MaxChars() = %d, want %d", tt.pattern, got, tt.max)
		}
	}
}

func TestGroupBookkeeping(t *testing.T) {
	tree, err := Parse("(?P<year>[0-9]{4})-(\\d{2})(?:x)", 0)
	if err != nil {
		t.Fatal(err)
	}
	if tree.NumGroups() != 2 {
		t.Fatalf("NumGroups() = %d, want 2", tree.NumGroups())
	}
	names := tree.SubexpNames()
	if names[0] != "year" || names[1] != "" {
		t.Errorf("SubexpNames() = %q", names)
	}
	if tree.GroupWidths[0] != (Width{4, 4}) || tree.GroupWidths[1] != (Width{2, 2}) {
		t.Errorf("GroupWidths = %v", tree.GroupWidths)
	}
}

func TestParseDeterministic(t *testing.T) {
	patterns := []string{
		`(?P<a>x|y)(?P=a)+[^\W\d]*?`,
		`(foo|foobar|fob)(?(1)z|w)`,
		`[\x00-\x1fà-ÿ]{2,}(?<=a)`,
	}
	for _, p := range patterns {
		t1, err := Parse(p, 0)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		t2, err := Parse(p, 0)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		if !EqualSubpatterns(t1.Root, t2.Root) {
			t.Errorf("Parse(%q) is not deterministic", p)
		}
		if t1.String() != t2.String() {
			t.Errorf("Parse(%q) dumps differ", p)
		}
	}
}

// Trees never share category or anchor nodes with each other.
func TestEscapeNodesNotShared(t *testing.T) {
	t1, err := Parse(`\d\b[\w]`, 0)
	if err != nil {
		t.Fatal(err)
	}
	t1.Root[0].(*Class).Items[0] = lit('z')
	t1.Root[1].(*At).Code = AtEnd
	t1.Root[2].(*Class).Items = nil

	t2, err := Parse(`\d\b[\w]`, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := Subpattern{
		&Class{Items: []Node{&Category{Code: CategoryDigit}}},
		&At{Code: AtBoundary},
		&Class{Items: []Node{&Category{Code: CategoryWord}}},
	}
	if !EqualSubpatterns(t2.Root, want) {
		t.Errorf("second parse saw mutations of the first:\n%s", t2)
	}
}

func TestNestingLimit(t *testing.T) {
	p := strings.Repeat("(", 100) + "a" + strings.Repeat(")", 100)
	tree, err := Parse(p, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.NumGroups() != 100 || tree.MaxChars() != 1 {
		t.Errorf("groups=%d max=%d", tree.NumGroups(), tree.MaxChars())
	}
}

func TestIsIdentifier(t *testing.T) {
	for name, want := range map[string]bool{
		"a": true, "_x1": true, "név": true,
		"": false, "1a": false, "a-b": false, "a b": false,
	} {
		if got := isIdentifier(name); got != want {
			t.Errorf("isIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}
