package parsec

// Parser parses a prefix of input into a value of type T.
//
// On success Parse returns the value, the unconsumed suffix of input and
// true. On failure it returns the zero value, input unchanged and false.
// Implementations must not keep state between calls.
type Parser[T any] interface {
	Parse(input string) (value T, rest string, ok bool)
}

// Func adapts an ordinary function to the Parser interface.
type Func[T any] func(input string) (T, string, bool)

// Parse calls f(input).
func (f Func[T]) Parse(input string) (T, string, bool) {
	return f(input)
}

// Unit is the value of parsers that only recognize input.
type Unit struct{}

// Pair holds the values of two parsers run in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

func fail[T any](input string) (T, string, bool) {
	var zero T
	return zero, input, false
}
