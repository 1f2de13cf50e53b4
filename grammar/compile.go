package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/combo/parsec"
	"golang.org/x/exp/ebnf"
)

var (
	// ErrUndefined is returned when a production refers to a name the
	// grammar does not define.
	ErrUndefined = errors.New("undefined production")
	// ErrLeftRecursion is returned for grammars in which a production can
	// reach itself without consuming input.
	ErrLeftRecursion = errors.New("left-recursive production")
)

// Compile builds a parser for the production start of g.
//
// Alternatives are tried in order and the first match wins. Repetitions
// are greedy. Left-recursive grammars are rejected.
func Compile(g ebnf.Grammar, start string) (parsec.Parser[*Node], error) {
	c := &compiler{
		grammar: g,
		rules:   make(map[string]parsec.Parser[*Node]),
	}
	if g[start] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, start)
	}
	if err := c.checkLeftRecursion(start); err != nil {
		return nil, err
	}
	if err := c.production(start); err != nil {
		return nil, err
	}
	return c.rules[start], nil
}

type nodes = []*Node

type compiler struct {
	grammar ebnf.Grammar
	rules   map[string]parsec.Parser[*Node]
}

// IsLexical reports whether the production name is lexical, that is, it
// does not start with an upper-case letter.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// production compiles name and every production it refers to.
func (c *compiler) production(name string) error {
	if _, done := c.rules[name]; done {
		return nil
	}
	prod := c.grammar[name]
	if prod == nil {
		return fmt.Errorf("%w: %s", ErrUndefined, name)
	}

	// Placeholder so recursive references resolve to the finished rule.
	var body parsec.Parser[nodes]
	c.rules[name] = parsec.Lazy(func() parsec.Parser[*Node] {
		return c.node(name, body)
	})

	lexical := IsLexical(name)
	compiled, err := c.expr(prod.Expr, lexical)
	if err != nil {
		return fmt.Errorf("production %s: %w", name, err)
	}
	body = compiled
	return nil
}

func (c *compiler) node(name string, body parsec.Parser[nodes]) parsec.Parser[*Node] {
	lexical := IsLexical(name)
	return parsec.Func[*Node](func(input string) (*Node, string, bool) {
		children, rest, ok := body.Parse(input)
		if !ok {
			return nil, input, false
		}
		text := strings.TrimLeftFunc(input[:len(input)-len(rest)], unicode.IsSpace)
		n := &Node{Name: name, Text: text}
		if !lexical {
			n.Children = children
		}
		return n, rest, true
	})
}

func (c *compiler) expr(x ebnf.Expression, lexical bool) (parsec.Parser[nodes], error) {
	switch x := x.(type) {
	case nil:
		return parsec.Pure(nodes{}), nil

	case ebnf.Alternative:
		alts := make([]parsec.Parser[nodes], 0, len(x))
		for _, alt := range x {
			p, err := c.expr(alt, lexical)
			if err != nil {
				return nil, err
			}
			alts = append(alts, p)
		}
		return parsec.Choices(alts[0], alts[1:]...), nil

	case ebnf.Sequence:
		var seq parsec.Parser[nodes] = parsec.Pure(nodes{})
		for _, item := range x {
			p, err := c.expr(item, lexical)
			if err != nil {
				return nil, err
			}
			seq = parsec.Map(parsec.Join(seq, p), concat)
		}
		return seq, nil

	case *ebnf.Name:
		if err := c.production(x.String); err != nil {
			return nil, err
		}
		var ref parsec.Parser[*Node] = c.rules[x.String]
		if !lexical && IsLexical(x.String) {
			ref = parsec.Lexeme(ref)
		}
		return parsec.Map(ref, single), nil

	case *ebnf.Token:
		lit := parsec.String(x.String)
		if !lexical {
			lit = parsec.Lexeme(lit)
		}
		name, text := strconv.Quote(x.String), x.String
		return parsec.Map(lit, func(parsec.Unit) nodes {
			return nodes{{Name: name, Text: text}}
		}), nil

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(x.Begin.String)
		hi, _ := utf8.DecodeRuneInString(x.End.String)
		r := parsec.Range(lo, hi)
		if !lexical {
			r = parsec.Lexeme(r)
		}
		return parsec.Map(r, func(r rune) nodes {
			return nodes{{Name: "range", Text: string(r)}}
		}), nil

	case *ebnf.Group:
		return c.expr(x.Body, lexical)

	case *ebnf.Option:
		body, err := c.expr(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parsec.Optional(body, nodes{}), nil

	case *ebnf.Repetition:
		body, err := c.expr(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parsec.Map(parsec.Many(body), flatten), nil

	default:
		return nil, fmt.Errorf("unsupported expression %T at %s", x, x.Pos())
	}
}

func concat(p parsec.Pair[nodes, nodes]) nodes {
	if len(p.Second) == 0 {
		return p.First
	}
	out := make(nodes, 0, len(p.First)+len(p.Second))
	out = append(out, p.First...)
	return append(out, p.Second...)
}

func single(n *Node) nodes {
	return nodes{n}
}

func flatten(groups []nodes) nodes {
	out := nodes{}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// checkLeftRecursion reports a production reachable from start that can
// call itself before consuming input.
func (c *compiler) checkLeftRecursion(start string) error {
	const (
		unvisited = iota
		active
		finished
	)
	state := make(map[string]int)
	nullable := make(map[string]bool)

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case active:
			return fmt.Errorf("%w: %s", ErrLeftRecursion, strings.Join(append(path, name), " -> "))
		case finished:
			return nil
		}
		prod := c.grammar[name]
		if prod == nil {
			return nil
		}
		state[name] = active
		for _, next := range c.leading(prod.Expr, nullable) {
			if err := visit(next, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = finished
		return nil
	}

	if err := visit(start, nil); err != nil {
		return err
	}

	// Productions reachable only in non-leading positions.
	names := make([]string, 0, len(c.grammar))
	for name := range c.grammar {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// leading returns the production names that x may invoke before it
// consumes any input.
func (c *compiler) leading(x ebnf.Expression, nullable map[string]bool) []string {
	switch x := x.(type) {
	case ebnf.Alternative:
		var names []string
		for _, alt := range x {
			names = append(names, c.leading(alt, nullable)...)
		}
		return names
	case ebnf.Sequence:
		var names []string
		for _, item := range x {
			names = append(names, c.leading(item, nullable)...)
			if !c.nullable(item, nullable, map[string]bool{}) {
				break
			}
		}
		return names
	case *ebnf.Name:
		return []string{x.String}
	case *ebnf.Group:
		return c.leading(x.Body, nullable)
	case *ebnf.Option:
		return c.leading(x.Body, nullable)
	case *ebnf.Repetition:
		return c.leading(x.Body, nullable)
	default:
		return nil
	}
}

// nullable reports whether x can match the empty string.
func (c *compiler) nullable(x ebnf.Expression, memo map[string]bool, visiting map[string]bool) bool {
	switch x := x.(type) {
	case nil:
		return true
	case ebnf.Alternative:
		for _, alt := range x {
			if c.nullable(alt, memo, visiting) {
				return true
			}
		}
		return false
	case ebnf.Sequence:
		for _, item := range x {
			if !c.nullable(item, memo, visiting) {
				return false
			}
		}
		return true
	case *ebnf.Name:
		if v, ok := memo[x.String]; ok {
			return v
		}
		prod := c.grammar[x.String]
		if prod == nil || visiting[x.String] {
			return false
		}
		visiting[x.String] = true
		v := c.nullable(prod.Expr, memo, visiting)
		delete(visiting, x.String)
		memo[x.String] = v
		return v
	case *ebnf.Token:
		return x.String == ""
	case *ebnf.Group:
		return c.nullable(x.Body, memo, visiting)
	case *ebnf.Option, *ebnf.Repetition:
		return true
	default:
		return false
	}
}
