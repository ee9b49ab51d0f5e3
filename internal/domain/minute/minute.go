// Package minute parses match-minute tokens such as "45" or "90+3".
package minute

import (
	"strconv"
	"strings"
)

// Value is an absolute match minute. Stoppage time is folded in, so "90+3" is 93.
type Value int

// Invalid marks a token that could not be parsed. It must be handled explicitly by
// callers; it never compares as a real minute.
const Invalid Value = -1

// Valid reports whether v holds a parsed minute.
func (v Value) Valid() bool { return v >= 0 }

// Int returns v as a plain int.
func (v Value) Int() int { return int(v) }

// String renders the minute, or "?" when invalid.
func (v Value) String() string {
	if !v.Valid() {
		return "?"
	}
	return strconv.Itoa(int(v))
}

// Parse converts a minute token into an absolute minute. A token with a '+' is split
// once on the first '+' and both halves must be non-negative integers. Anything else
// returns Invalid; Parse never panics and enforces no upper bound.
func Parse(token string) Value {
	token = strings.TrimSpace(token)
	if token == "" {
		return Invalid
	}

	base, extra, stoppage := strings.Cut(token, "+")
	b, ok := nonNegative(base)
	if !ok {
		return Invalid
	}
	if !stoppage {
		return Value(b)
	}

	e, ok := nonNegative(extra)
	if !ok {
		return Invalid
	}
	return Value(b + e)
}

func nonNegative(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
