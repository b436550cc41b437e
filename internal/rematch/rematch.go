// Package rematch provides regex matching with the semantics the spawk rule
// types need: a compiled pattern is searched anywhere in a line (not anchored)
// using leftmost-first matching, and a successful search reports capture
// group positions.
//
// Built on the coregex engine. Unlike AWK, dot does not match newline here;
// input is already line-framed, so there are no newlines to match.
package rematch

import (
	"github.com/coregx/coregex"
)

// Regex is a compiled pattern with search semantics.
type Regex struct {
	pattern string
	re      *coregex.Regexp
}

// Compile creates a new Regex from pattern.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{pattern: pattern, re: re}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string {
	return r.pattern
}

// Match reports whether s contains any match of the pattern.
func (r *Regex) Match(s string) bool {
	return r.re.MatchString(s)
}

// SearchIndex returns the positions of the leftmost match and its capture
// groups, in the flat pairs layout of regexp.FindStringSubmatchIndex:
// loc[2*n] and loc[2*n+1] bound group n, with group 0 the whole match and
// -1 marking groups that did not participate. Returns nil when s does not
// match.
func (r *Regex) SearchIndex(s string) []int {
	return r.re.FindStringSubmatchIndex(s)
}
