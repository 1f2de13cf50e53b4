package parsec

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNoMatch is returned by Run when the parser does not match.
	ErrNoMatch = errors.New("no match")
	// ErrTrailingInput is returned by Run when the parser matched but left
	// more than whitespace behind.
	ErrTrailingInput = errors.New("unexpected trailing input")
)

const maxQuoted = 32

// Run applies p to input and requires that only whitespace remains.
func Run[T any](p Parser[T], input string) (T, error) {
	var zero T
	value, rest, ok := p.Parse(input)
	if !ok {
		return zero, ErrNoMatch
	}
	if trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace); trimmed != "" {
		return zero, fmt.Errorf("%w at offset %d: %q", ErrTrailingInput, len(input)-len(trimmed), excerpt(trimmed))
	}
	return value, nil
}

func excerpt(s string) string {
	if len(s) <= maxQuoted {
		return s
	}
	cut := maxQuoted
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
