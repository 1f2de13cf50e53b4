package lsp

import (
	"github.com/dhamidi/combo/parsec"
)

// Problem is an error found in a document. Line and Column are 1-based;
// zero means the position is unknown.
type Problem struct {
	Line    int
	Column  int
	Message string
}

type location struct {
	line, column int64
}

// problemParser matches errors formatted as "name:line:col: message" or,
// for errors without a position, "name: message".
func problemParser(name string) parsec.Parser[Problem] {
	colonNumber := parsec.Right(parsec.Character(':'), parsec.Digits)
	position := parsec.Optional(
		parsec.Map(parsec.Join(colonNumber, colonNumber), func(p parsec.Pair[int64, int64]) location {
			return location{line: p.First, column: p.Second}
		}),
		location{},
	)
	message := parsec.Recognize(parsec.Many(parsec.Satisfy(func(rune) bool { return true })))

	return parsec.Map(
		parsec.Join3(parsec.Right(parsec.String(name), position), parsec.String(": "), message),
		func(v parsec.Pair[parsec.Pair[location, parsec.Unit], string]) Problem {
			loc := v.First.First
			return Problem{Line: int(loc.line), Column: int(loc.column), Message: v.Second}
		},
	)
}

// problemFromError converts err into a Problem, extracting the position
// when err was reported for the document called name.
func problemFromError(name string, err error) Problem {
	text := err.Error()
	if p, rest, ok := problemParser(name).Parse(text); ok && rest == "" {
		return p
	}
	return Problem{Message: text}
}
