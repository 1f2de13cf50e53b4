package lsp

import (
	"path"
	"sort"
	"strings"

	"github.com/dhamidi/combo/grammar"
	"github.com/dhamidi/combo/jsonparse"
	"golang.org/x/exp/ebnf"
)

// Language identifies how a document is analyzed.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageEBNF
	LanguageJSON
)

func (l Language) String() string {
	switch l {
	case LanguageEBNF:
		return "ebnf"
	case LanguageJSON:
		return "json"
	default:
		return "unknown"
	}
}

// LanguageOf picks the language from the extension of uri.
func LanguageOf(uri string) Language {
	switch strings.ToLower(path.Ext(uri)) {
	case ".ebnf":
		return LanguageEBNF
	case ".json":
		return LanguageJSON
	default:
		return LanguageUnknown
	}
}

// Symbol is a production defined in a grammar document.
type Symbol struct {
	Name    string
	Lexical bool
	Line    int
	Column  int
}

// grammarName is the file name given to the ebnf parser so that
// positions in its errors can be recovered.
const grammarName = "grammar"

func analyzeGrammar(text string) ([]Problem, []Symbol) {
	g, err := ebnf.Parse(grammarName, strings.NewReader(text))
	var problems []Problem
	for _, e := range grammar.Errors(err) {
		problems = append(problems, problemFromError(grammarName, e))
	}
	symbols := symbolsOf(g)
	if err != nil || len(symbols) == 0 {
		return problems, symbols
	}

	// The first production in the file is the start production.
	if err := ebnf.Verify(g, symbols[0].Name); err != nil {
		for _, e := range grammar.Errors(err) {
			problems = append(problems, problemFromError(grammarName, e))
		}
	}
	return problems, symbols
}

func symbolsOf(g ebnf.Grammar) []Symbol {
	symbols := make([]Symbol, 0, len(g))
	for name, prod := range g {
		if prod == nil || prod.Name == nil {
			continue
		}
		pos := prod.Name.Pos()
		symbols = append(symbols, Symbol{
			Name:    name,
			Lexical: grammar.IsLexical(name),
			Line:    pos.Line,
			Column:  pos.Column,
		})
	}
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].Line != symbols[j].Line {
			return symbols[i].Line < symbols[j].Line
		}
		return symbols[i].Column < symbols[j].Column
	})
	return symbols
}

func analyzeJSON(text string) []Problem {
	if _, err := jsonparse.Parse(text); err != nil {
		return []Problem{{Message: err.Error()}}
	}
	return nil
}
