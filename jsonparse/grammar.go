package jsonparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/combo/parsec"
)

var document = newValueParser()

// Parser returns the parser for a single JSON value. Leading whitespace is
// skipped; trailing input is left in the remainder.
func Parser() parsec.Parser[Value] {
	return document
}

// Parse parses input as exactly one JSON value surrounded by optional
// whitespace.
func Parse(input string) (Value, error) {
	v, err := parsec.Run(document, input)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

func token(s string) parsec.Parser[parsec.Unit] {
	return parsec.Lexeme(parsec.String(s))
}

func punct(c rune) parsec.Parser[parsec.Unit] {
	return parsec.Lexeme(parsec.Character(c))
}

func constant(s string, v Value) parsec.Parser[Value] {
	return parsec.Map(token(s), func(parsec.Unit) Value { return v })
}

func newValueParser() parsec.Parser[Value] {
	var value parsec.Parser[Value]

	array := parsec.Map(
		parsec.Between(punct('['), parsec.Separated(parsec.Lazy(func() parsec.Parser[Value] { return value }), punct(',')), punct(']')),
		func(items []Value) Value { return Array(items) },
	)

	member := parsec.Join(
		parsec.Left(parsec.Lexeme(stringLiteral), punct(':')),
		parsec.Lazy(func() parsec.Parser[Value] { return value }),
	)
	object := parsec.Map(
		parsec.Between(punct('{'), parsec.Separated(member, punct(',')), punct('}')),
		func(members []parsec.Pair[string, Value]) Value {
			obj := make(Object, len(members))
			for _, m := range members {
				obj[m.First] = m.Second
			}
			return obj
		},
	)

	value = parsec.Choices(
		constant("null", Null{}),
		constant("false", Bool(false)),
		constant("true", Bool(true)),
		parsec.Lexeme(number),
		parsec.Map(parsec.Lexeme(stringLiteral), func(s string) Value { return String(s) }),
		array,
		object,
	)
	return value
}

var (
	digit     = parsec.Range('0', '9')
	digitRun  = parsec.Recognize(parsec.Many1(digit))
	maybeSign = parsec.Optional(parsec.Recognize(parsec.Choice(parsec.Character('-'), parsec.Character('+'))), "")

	integer = parsec.Choice(
		parsec.Recognize(parsec.Character('0')),
		parsec.Recognize(parsec.Join(parsec.Range('1', '9'), parsec.Many(digit))),
	)
	fraction = parsec.Recognize(parsec.Join(parsec.Character('.'), digitRun))
	exponent = parsec.Recognize(parsec.Join3(
		parsec.Satisfy(func(r rune) bool { return r == 'e' || r == 'E' }),
		maybeSign,
		digitRun,
	))

	numberText = parsec.Recognize(parsec.Join4(
		parsec.Optional(parsec.Recognize(parsec.Character('-')), ""),
		integer,
		parsec.Optional(fraction, ""),
		parsec.Optional(exponent, ""),
	))
)

// number converts the matched text with strconv.ParseFloat and rejects
// values outside the float64 range.
var number parsec.Parser[Value] = parsec.Func[Value](func(input string) (Value, string, bool) {
	text, rest, ok := numberText.Parse(input)
	if !ok {
		return nil, input, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, input, false
	}
	return Number(f), rest, true
})

var (
	plainChar = parsec.Satisfy(func(r rune) bool {
		return r != '"' && r != '\\' && r >= 0x20
	})

	hex4 = parsec.Map(
		parsec.Recognize(parsec.Join4(hexDigit, hexDigit, hexDigit, hexDigit)),
		func(s string) rune {
			n, _ := strconv.ParseUint(s, 16, 32)
			return rune(n)
		},
	)
	hexDigit = parsec.Satisfy(func(r rune) bool {
		return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
	})
	unicodeEscape = parsec.Right(parsec.String(`\u`), hex4)

	simpleEscape = parsec.Right(parsec.Character('\\'), parsec.Choices(
		escape('"', '"'),
		escape('\\', '\\'),
		escape('/', '/'),
		escape('b', '\b'),
		escape('f', '\f'),
		escape('n', '\n'),
		escape('r', '\r'),
		escape('t', '\t'),
	))

	stringChar = parsec.Choices(plainChar, simpleEscape, parsec.Parser[rune](utf16Escape))

	stringLiteral = parsec.Map(
		parsec.Between(parsec.Character('"'), parsec.Many(stringChar), parsec.Character('"')),
		func(runes []rune) string {
			var b strings.Builder
			for _, r := range runes {
				b.WriteRune(r)
			}
			return b.String()
		},
	)
)

func escape(c, r rune) parsec.Parser[rune] {
	return parsec.Map(parsec.Character(c), func(parsec.Unit) rune { return r })
}

// utf16Escape decodes \uXXXX, joining surrogate pairs. A lone surrogate
// becomes U+FFFD.
var utf16Escape parsec.Func[rune] = func(input string) (rune, string, bool) {
	r, rest, ok := unicodeEscape.Parse(input)
	if !ok {
		return 0, input, false
	}
	if !utf16.IsSurrogate(r) {
		return r, rest, true
	}
	if low, after, ok := unicodeEscape.Parse(rest); ok {
		if combined := utf16.DecodeRune(r, low); combined != unicode.ReplacementChar {
			return combined, after, true
		}
	}
	return unicode.ReplacementChar, rest, true
}
