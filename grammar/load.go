// Package grammar turns EBNF grammars into parsec parsers.
//
// Grammars use the notation of golang.org/x/exp/ebnf. Productions whose
// name starts with an upper-case letter are syntactic: whitespace is
// skipped before each token, character range and lexical production they
// refer to. Lower-case productions are lexical and match input exactly.
package grammar

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"golang.org/x/exp/ebnf"
)

// Load reads and parses the grammar in filename.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses a grammar from r. name is used in error positions.
func ParseGrammar(name string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production reachable from start is defined and
// used. With an empty start only syntax has been checked and Verify
// returns nil.
func Verify(g ebnf.Grammar, start string) error {
	if start == "" {
		return nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Errors splits an error reported by the ebnf package into its parts.
// Other errors are returned as a single-element slice.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; e = unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		errs := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := v.Index(i).Interface().(error); ok {
				errs = append(errs, item)
			}
		}
		return errs
	}
	return []error{err}
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
