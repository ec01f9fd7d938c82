package glob

import (
	"strings"

	gobwas "github.com/gobwas/glob"
)

// Matcher is a compiled pattern. Match reports whether the whole path
// matches; it is pure and safe for concurrent use.
type Matcher interface {
	Match(path string) bool
}

// exactMatcher is used for patterns without wildcards.
type exactMatcher string

func (m exactMatcher) Match(path string) bool {
	return string(m) == path
}

// HasWildcard reports whether pattern contains '*' or '?'.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// Compile turns pattern into a full-string Matcher. A pattern without
// wildcards compiles to exact string equality, so the empty pattern matches
// only the empty path.
func Compile(pattern string) (Matcher, error) {
	if !HasWildcard(pattern) {
		return exactMatcher(pattern), nil
	}

	g, err := gobwas.Compile(escapeLiterals(pattern))
	if err != nil {
		return nil, err
	}
	return g, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// package-level constant patterns.
func MustCompile(pattern string) Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic("glob: Compile(" + pattern + "): " + err.Error())
	}
	return m
}

// Match is a convenience for one-off checks.
func Match(pattern, path string) bool {
	m, err := Compile(pattern)
	if err != nil {
		return false
	}
	return m.Match(path)
}

// escapeLiterals quotes everything except '*' and '?' so gobwas treats
// brackets, braces and backslashes as plain characters.
func escapeLiterals(pattern string) string {
	var b strings.Builder
	literal := strings.Builder{}
	flush := func() {
		if literal.Len() > 0 {
			b.WriteString(gobwas.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}
	for _, r := range pattern {
		if r == '*' || r == '?' {
			flush()
			b.WriteRune(r)
			continue
		}
		literal.WriteRune(r)
	}
	flush()
	return b.String()
}
