// Package ident validates and sanitizes the identifiers used for signal,
// port, and module names, and parses the small connection-string grammar
// ("bus[3..0]") used when wiring ports to bus slices.
//
// No library in this project's dependency set addresses lexing strings of
// this size; the grammar is a handful of regular expressions, so it is
// implemented directly against the standard library rather than pulled in
// from a parser-combinator or lexer package.
package ident

import (
	"fmt"
	"regexp"
	"strconv"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate reports whether name is a legal HDL identifier.
func Validate(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("ident: %q is not a valid identifier", name)
	}
	return nil
}

var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Sanitize rewrites s into a legal identifier by replacing every
// non-identifier byte with an underscore and prefixing an underscore if
// the result would otherwise start with a digit.
func Sanitize(s string) string {
	if s == "" {
		return "_"
	}
	out := sanitizeRe.ReplaceAllString(s, "_")
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// Disambiguate appends a monotonic suffix to base for the nth collision
// (n >= 1) encountered while assigning sibling instance names.
func Disambiguate(base string, n int) string {
	return base + "_" + strconv.Itoa(n)
}

var rangeRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\.\.(\d+)\]$`)

// ParseRange parses a connection string of the form "name[hi..lo]" into
// its base identifier and inclusive bit bounds. It returns ok == false if
// conn does not match the bus-range grammar at all, in which case conn
// should be treated as a plain identifier.
func ParseRange(conn string) (name string, hi, lo uint, ok bool, err error) {
	m := rangeRe.FindStringSubmatch(conn)
	if m == nil {
		return "", 0, 0, false, nil
	}
	hiv, e1 := strconv.ParseUint(m[2], 10, 32)
	lov, e2 := strconv.ParseUint(m[3], 10, 32)
	if e1 != nil || e2 != nil {
		return "", 0, 0, false, fmt.Errorf("ident: invalid bus range in %q", conn)
	}
	if hiv < lov {
		return "", 0, 0, false, fmt.Errorf("ident: bus range %q has hi < lo", conn)
	}
	return m[1], uint(hiv), uint(lov), true, nil
}
