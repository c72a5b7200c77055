// Package syntax parses Python sre-style regular expressions into a tree of
// generation nodes.
//
// The accepted dialect is the one of Python's re module: groups, named
// groups, backreferences, lookaround, conditionals, inline flags and the
// usual escapes. Parse applies the sre compile-time rewrites (prefix
// factoring, class coalescing and transparent group unpacking) and records
// the width of every node, so a Tree can answer MinChars/MaxChars without
// walking it again.
package syntax
