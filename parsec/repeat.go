package parsec

// Many applies p until it fails and collects the values. It never fails:
// with no match it returns an empty slice and the original input.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Func[[]T](func(input string) ([]T, string, bool) {
		values := []T{}
		for {
			value, rest, ok := p.Parse(input)
			if !ok {
				return values, input, true
			}
			values = append(values, value)
			if len(rest) == len(input) {
				// p matched the empty string and would match forever.
				return values, rest, true
			}
			input = rest
		}
	})
}

// Many1 is like Many but requires at least one match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Map(Join(p, Many(p)), func(v Pair[T, []T]) []T {
		return append([]T{v.First}, v.Second...)
	})
}

// Separated parses zero or more p separated by sep.
//
// If the first p fails the result is empty and no input is consumed. After
// that, parsing stops at the first sep that does not match. A sep that
// matches must be followed by p, otherwise the whole parse fails. If sep
// and p together consume nothing, parsing stops after that item.
func Separated[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Func[[]T](func(input string) ([]T, string, bool) {
		values := []T{}
		value, rest, ok := p.Parse(input)
		if !ok {
			return values, input, true
		}
		values = append(values, value)
		for {
			_, afterSep, ok := sep.Parse(rest)
			if !ok {
				return values, rest, true
			}
			value, afterItem, ok := p.Parse(afterSep)
			if !ok {
				return fail[[]T](input)
			}
			values = append(values, value)
			if len(afterItem) == len(rest) {
				// sep and p matched the empty string and would match forever.
				return values, afterItem, true
			}
			rest = afterItem
		}
	})
}
