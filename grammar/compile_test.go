package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/combo/parsec"
)

const arithmetic = `
Expr   = Term { ( "+" | "-" ) Term } .
Term   = Factor { ( "*" | "/" ) Factor } .
Factor = number | "(" Expr ")" .
number = digit { digit } .
digit  = "0" … "9" .
`

func mustCompile(t *testing.T, src, start string) parsec.Parser[*Node] {
	t.Helper()
	g, err := ParseGrammar("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	p, err := Compile(g, start)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestCompileArithmetic(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")

	tests := []struct {
		input string
		ok    bool
	}{
		{"1", true},
		{"12 + 3", true},
		{"1 + 2*(3 - 4)", true},
		{"  (((7)))  ", true},
		{"1 +", false},
		{"(1", false},
		{"", false},
		{"1 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parsec.Run(p, tt.input)
			if (err == nil) != tt.ok {
				t.Errorf("Run(%q) error = %v, want ok = %v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestCompileTree(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")

	root, err := parsec.Run(p, "10 * 2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.Name != "Expr" {
		t.Errorf("root = %q, want Expr", root.Name)
	}
	if root.Text != "10 * 2" {
		t.Errorf("root text = %q, want %q", root.Text, "10 * 2")
	}

	term := root.Find("Term")
	if term == nil {
		t.Fatal("no Term node")
	}
	if len(term.Children) != 3 {
		t.Fatalf("Term has %d children, want 3: %s", len(term.Children), term)
	}
	if term.Children[1].Name != `"*"` {
		t.Errorf("operator = %q, want %q", term.Children[1].Name, `"*"`)
	}

	num := root.Find("number")
	if num == nil || num.Text != "10" {
		t.Fatalf("number = %+v, want text 10", num)
	}
	if !num.IsLeaf() {
		t.Errorf("lexical production has children: %s", num)
	}
}

func TestCompileLexicalProductionsMatchExactly(t *testing.T) {
	p := mustCompile(t, `
		List  = "[" [ ident { "," ident } ] "]" .
		ident = letter { letter } .
		letter = "a" … "z" .
	`, "List")

	root, err := parsec.Run(p, "[ ab , cd ]")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var idents []string
	for _, c := range root.Children {
		if c.Name == "ident" {
			idents = append(idents, c.Text)
		}
	}
	if strings.Join(idents, ",") != "ab,cd" {
		t.Errorf("idents = %v, want [ab cd]", idents)
	}

	if _, err := parsec.Run(p, "[a b]"); err == nil {
		t.Error("identifiers separated by whitespace were joined")
	}
	if _, err := parsec.Run(p, "[]"); err != nil {
		t.Errorf("Run([]) = %v", err)
	}
}

func TestCompileOrderedChoice(t *testing.T) {
	p := mustCompile(t, `S = "a" | "ab" .`, "S")

	if _, err := parsec.Run(p, "ab"); !errors.Is(err, parsec.ErrTrailingInput) {
		t.Errorf("Run(ab) error = %v, want ErrTrailingInput", err)
	}
}

func TestCompileEmptyProduction(t *testing.T) {
	p := mustCompile(t, `S = "x" E "y" . E = .`, "S")
	if _, err := parsec.Run(p, "x y"); err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start string
		want  error
	}{
		{"missing start", `A = "a" .`, "B", ErrUndefined},
		{"undefined reference", `A = B .`, "A", ErrUndefined},
		{"direct left recursion", `E = E "+" "1" | "1" .`, "E", ErrLeftRecursion},
		{"indirect left recursion", `A = B "x" . B = [ "y" ] A .`, "A", ErrLeftRecursion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGrammar("test", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("parse grammar: %v", err)
			}
			_, err = Compile(g, tt.start)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodeJSON(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")
	root, err := parsec.Run(p, "4")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := root.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"name":"Expr","children":[{"name":"Term","children":[{"name":"Factor","children":[{"name":"number","text":"4"}]}]}]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestNodeString(t *testing.T) {
	n := &Node{Name: "S", Text: "x y", Children: []*Node{
		{Name: `"x"`, Text: "x"},
		{Name: "y", Text: "y"},
	}}
	want := "S\n  \"x\" \"x\"\n  y \"y\""
	if got := n.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestCompileRangeInSyntacticProduction(t *testing.T) {
	p := mustCompile(t, `Pair = "0" … "9" "," "0" … "9" .`, "Pair")

	root, err := parsec.Run(p, " 5 , 7")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if root.Text != "5 , 7" {
		t.Errorf("text = %q, want %q", root.Text, "5 , 7")
	}
	if len(root.Children) != 3 || root.Children[2].Text != "7" {
		t.Errorf("children = %s", root)
	}
}
