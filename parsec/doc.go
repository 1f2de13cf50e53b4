// Package parsec builds text parsers by composing small parsers.
//
// A parser is any value with a Parse method that takes the unconsumed input
// and reports the parsed value, the remaining input, and whether it matched:
//
//	p := parsec.Separated(parsec.Digits, parsec.Character(','))
//	nums, rest, ok := p.Parse("1,2,3")
//
// Matching is ordered and greedy. Choice returns the first alternative that
// matches, Join never backtracks into its first parser, and Many stops at
// the first failure of its item parser. A failed parse carries no position
// or cause; use Run to apply a parser to a complete input.
package parsec
