package parsec

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Character matches the single rune c.
func Character(c rune) Parser[Unit] {
	return Func[Unit](func(input string) (Unit, string, bool) {
		r, size := utf8.DecodeRuneInString(input)
		if size == 0 || r != c {
			return fail[Unit](input)
		}
		return Unit{}, input[size:], true
	})
}

// String matches the literal target.
func String(target string) Parser[Unit] {
	return Func[Unit](func(input string) (Unit, string, bool) {
		rest, found := strings.CutPrefix(input, target)
		if !found {
			return fail[Unit](input)
		}
		return Unit{}, rest, true
	})
}

// Digits matches the longest run of ASCII decimal digits and converts it
// to an int64. It fails if there is no digit or the number overflows.
var Digits Parser[int64] = Func[int64](digits)

func digits(input string) (int64, string, bool) {
	end := 0
	for end < len(input) && isDigit(input[end]) {
		end++
	}
	if end == 0 {
		return fail[int64](input)
	}
	value, err := strconv.ParseInt(input[:end], 10, 64)
	if err != nil {
		return fail[int64](input)
	}
	return value, input[end:], true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// Lexeme skips leading whitespace before running p. Trailing whitespace is
// left for the next parser.
func Lexeme[T any](p Parser[T]) Parser[T] {
	return Func[T](func(input string) (T, string, bool) {
		value, rest, ok := p.Parse(strings.TrimLeftFunc(input, unicode.IsSpace))
		if !ok {
			return fail[T](input)
		}
		return value, rest, true
	})
}

// Satisfy matches one rune for which pred returns true.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return Func[rune](func(input string) (rune, string, bool) {
		r, size := utf8.DecodeRuneInString(input)
		if size == 0 || (r == utf8.RuneError && size == 1) || !pred(r) {
			return fail[rune](input)
		}
		return r, input[size:], true
	})
}

// Range matches one rune between lo and hi inclusive.
func Range(lo, hi rune) Parser[rune] {
	return Satisfy(func(r rune) bool { return lo <= r && r <= hi })
}

// Pure succeeds with v without consuming input.
func Pure[T any](v T) Parser[T] {
	return Func[T](func(input string) (T, string, bool) {
		return v, input, true
	})
}

// Fail never matches.
func Fail[T any]() Parser[T] {
	return Func[T](fail[T])
}

// Recognize runs p and returns the text it consumed instead of its value.
func Recognize[T any](p Parser[T]) Parser[string] {
	return Func[string](func(input string) (string, string, bool) {
		_, rest, ok := p.Parse(input)
		if !ok {
			return fail[string](input)
		}
		return input[:len(input)-len(rest)], rest, true
	})
}
