package parsec

import (
	"strconv"
	"testing"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestMap(t *testing.T) {
	parser := Map(Digits, formatInt)

	v, rest, ok := parser.Parse("12+")
	if !ok || v != "12" || rest != "+" {
		t.Errorf("Parse = %q, %q, %v", v, rest, ok)
	}

	if _, rest, ok := parser.Parse("+12"); ok || rest != "+12" {
		t.Errorf("Parse(+12) = %q, %v, want failure", rest, ok)
	}
}

func TestChoiceMacro(t *testing.T) {
	parser := Choices(
		Map(String("zero"), func(Unit) int64 { return 0 }),
		Map(String("one"), func(Unit) int64 { return 1 }),
		Digits,
	)

	tests := []struct {
		input string
		value int64
		ok    bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"42", 42, true},
		{"hoge", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, rest, ok := parser.Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (v != tt.value || rest != "") {
				t.Errorf("Parse = %d, %q, want %d, %q", v, rest, tt.value, "")
			}
		})
	}
}

func TestChoiceIsLeftBiased(t *testing.T) {
	short := Map(String("ab"), func(Unit) string { return "short" })
	long := Map(String("abc"), func(Unit) string { return "long" })

	v, rest, ok := Choice(short, long).Parse("abc")
	if !ok || v != "short" || rest != "c" {
		t.Errorf("Choice(short, long) = %q, %q, %v", v, rest, ok)
	}

	v, rest, ok = Choice(long, short).Parse("abc")
	if !ok || v != "long" || rest != "" {
		t.Errorf("Choice(long, short) = %q, %q, %v", v, rest, ok)
	}
}

func TestChoiceRetriesOriginalInput(t *testing.T) {
	// The first alternative consumes "1" before failing on the missing '+'.
	sum := Map(Join(Digits, Character('+')), func(p Pair[int64, Unit]) int64 { return p.First })
	parser := Choice(sum, Digits)

	v, rest, ok := parser.Parse("1-")
	if !ok || v != 1 || rest != "-" {
		t.Errorf("Parse = %d, %q, %v, want 1, %q, true", v, rest, ok, "-")
	}
}

func TestJoin(t *testing.T) {
	parser := Join(Digits, Character(','))

	v, rest, ok := parser.Parse("7,8")
	if !ok || v.First != 7 || rest != "8" {
		t.Errorf("Parse = %+v, %q, %v", v, rest, ok)
	}
	if _, rest, ok := parser.Parse("7;8"); ok || rest != "7;8" {
		t.Errorf("Parse(7;8) = %q, %v, want failure", rest, ok)
	}
	if _, _, ok := parser.Parse(",8"); ok {
		t.Error("Parse(,8) succeeded")
	}
}

func TestJoinDoesNotBacktrack(t *testing.T) {
	// Many consumes every 'a', so the trailing 'a' can never be matched.
	as := Many(Character('a'))
	parser := Join(as, Character('a'))

	if _, _, ok := parser.Parse("aaa"); ok {
		t.Error("Join backtracked into Many")
	}
}

func TestJoinMacro(t *testing.T) {
	parser := Join3(Lexeme(Digits), Lexeme(Digits), Lexeme(Digits))

	v, rest, ok := parser.Parse("10 20 30")
	if !ok {
		t.Fatal("expected match")
	}
	want := Pair[Pair[int64, int64], int64]{First: Pair[int64, int64]{First: 10, Second: 20}, Second: 30}
	if v != want {
		t.Errorf("value = %+v, want %+v", v, want)
	}
	if rest != "" {
		t.Errorf("rest = %q, want empty", rest)
	}

	if _, _, ok := parser.Parse("10 20 AA"); ok {
		t.Error("Parse(10 20 AA) succeeded")
	}
}

func TestJoinNesting(t *testing.T) {
	d := Lexeme(Digits)

	v4, _, ok := Join4(d, d, d, d).Parse("1 2 3 4")
	if !ok || v4.First.First.First != 1 || v4.First.First.Second != 2 || v4.First.Second != 3 || v4.Second != 4 {
		t.Errorf("Join4 = %+v, %v", v4, ok)
	}

	v5, rest, ok := Join5(d, d, d, d, d).Parse("1 2 3 4 5 6")
	if !ok || v5.First.First.First.First != 1 || v5.Second != 5 || rest != " 6" {
		t.Errorf("Join5 = %+v, %q, %v", v5, rest, ok)
	}
}

func TestLeftRightBetween(t *testing.T) {
	v, rest, ok := Left(Digits, Character(';')).Parse("5;")
	if !ok || v != 5 || rest != "" {
		t.Errorf("Left = %d, %q, %v", v, rest, ok)
	}

	v, rest, ok = Right(Character('#'), Digits).Parse("#9x")
	if !ok || v != 9 || rest != "x" {
		t.Errorf("Right = %d, %q, %v", v, rest, ok)
	}

	v, rest, ok = Between(Character('('), Lexeme(Digits), Lexeme(Character(')'))).Parse("( 3 )!")
	if !ok || v != 3 || rest != "!" {
		t.Errorf("Between = %d, %q, %v", v, rest, ok)
	}
}

func TestOptional(t *testing.T) {
	sign := Optional(Map(Character('-'), func(Unit) int64 { return -1 }), 1)

	if v, rest, ok := sign.Parse("-3"); !ok || v != -1 || rest != "3" {
		t.Errorf("Optional(-3) = %d, %q, %v", v, rest, ok)
	}
	if v, rest, ok := sign.Parse("3"); !ok || v != 1 || rest != "3" {
		t.Errorf("Optional(3) = %d, %q, %v", v, rest, ok)
	}
}

func TestLazyRecursion(t *testing.T) {
	// nested = '(' nested ')' | ""
	var nested Parser[int]
	nested = Lazy(func() Parser[int] {
		return Optional(
			Map(Between(Character('('), nested, Character(')')), func(d int) int { return d + 1 }),
			0,
		)
	})

	tests := []struct {
		input string
		depth int
		rest  string
	}{
		{"", 0, ""},
		{"()", 1, ""},
		{"((()))", 3, ""},
		{"(()", 0, "(()"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			depth, rest, ok := nested.Parse(tt.input)
			if !ok {
				t.Fatal("expected match")
			}
			if depth != tt.depth || rest != tt.rest {
				t.Errorf("Parse = %d, %q, want %d, %q", depth, rest, tt.depth, tt.rest)
			}
		})
	}
}

func TestPrefixRoundTrip(t *testing.T) {
	parser := Choices(
		Map(Join3(Lexeme(Digits), Lexeme(Character('+')), Lexeme(Digits)), func(Pair[Pair[int64, Unit], int64]) Unit { return Unit{} }),
		Lexeme(String("nil")),
	)

	inputs := []string{"1 + 2 tail", " nil;", "12+3", "  7 + 8"}
	for _, input := range inputs {
		_, rest, ok := parser.Parse(input)
		if !ok {
			t.Errorf("Parse(%q) failed", input)
			continue
		}
		consumed := input[:len(input)-len(rest)]
		if consumed+rest != input {
			t.Errorf("consumed %q + rest %q != %q", consumed, rest, input)
		}
	}
}

type upper struct{}

func (upper) Parse(input string) (string, string, bool) {
	if input == "" || input[0] < 'A' || input[0] > 'Z' {
		return "", input, false
	}
	return input[:1], input[1:], true
}

func TestCustomParserImplementation(t *testing.T) {
	parser := Many(Choice[string](upper{}, Map(Digits, formatInt)))

	v, rest, ok := parser.Parse("AB12Cd")
	if !ok {
		t.Fatal("expected match")
	}
	want := []string{"A", "B", "12", "C"}
	if len(v) != len(want) {
		t.Fatalf("got %v, want %v", v, want)
	}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("v[%d] = %q, want %q", i, v[i], want[i])
		}
	}
	if rest != "d" {
		t.Errorf("rest = %q, want %q", rest, "d")
	}
}
