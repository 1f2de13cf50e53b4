package parsec

import "sync"

// Map applies f to the value of p. The remainder is left as p returned it.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return Func[B](func(input string) (B, string, bool) {
		value, rest, ok := p.Parse(input)
		if !ok {
			return fail[B](input)
		}
		return f(value), rest, true
	})
}

// Choice tries p1 and, only if it fails, p2 on the same input.
func Choice[T any](p1, p2 Parser[T]) Parser[T] {
	return Func[T](func(input string) (T, string, bool) {
		if value, rest, ok := p1.Parse(input); ok {
			return value, rest, true
		}
		return p2.Parse(input)
	})
}

// Choices tries each parser in order and returns the first match.
func Choices[T any](first Parser[T], rest ...Parser[T]) Parser[T] {
	p := first
	for _, next := range rest {
		p = Choice(p, next)
	}
	return p
}

// Join runs p1 and then p2 on what p1 left. If p2 fails the whole parse
// fails; p1 is not retried.
func Join[A, B any](p1 Parser[A], p2 Parser[B]) Parser[Pair[A, B]] {
	return Func[Pair[A, B]](func(input string) (Pair[A, B], string, bool) {
		first, rest, ok := p1.Parse(input)
		if !ok {
			return fail[Pair[A, B]](input)
		}
		second, rest, ok := p2.Parse(rest)
		if !ok {
			return fail[Pair[A, B]](input)
		}
		return Pair[A, B]{First: first, Second: second}, rest, true
	})
}

// Join3 is Join(Join(p1, p2), p3).
func Join3[A, B, C any](p1 Parser[A], p2 Parser[B], p3 Parser[C]) Parser[Pair[Pair[A, B], C]] {
	return Join(Join(p1, p2), p3)
}

// Join4 is Join(Join3(p1, p2, p3), p4).
func Join4[A, B, C, D any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D]) Parser[Pair[Pair[Pair[A, B], C], D]] {
	return Join(Join3(p1, p2, p3), p4)
}

// Join5 is Join(Join4(p1, p2, p3, p4), p5).
func Join5[A, B, C, D, E any](p1 Parser[A], p2 Parser[B], p3 Parser[C], p4 Parser[D], p5 Parser[E]) Parser[Pair[Pair[Pair[Pair[A, B], C], D], E]] {
	return Join(Join4(p1, p2, p3, p4), p5)
}

// Left runs p1 then p2 and keeps the value of p1.
func Left[A, B any](p1 Parser[A], p2 Parser[B]) Parser[A] {
	return Map(Join(p1, p2), func(p Pair[A, B]) A { return p.First })
}

// Right runs p1 then p2 and keeps the value of p2.
func Right[A, B any](p1 Parser[A], p2 Parser[B]) Parser[B] {
	return Map(Join(p1, p2), func(p Pair[A, B]) B { return p.Second })
}

// Between runs open, p and closing in sequence and keeps the value of p.
func Between[O, T, C any](open Parser[O], p Parser[T], closing Parser[C]) Parser[T] {
	return Right(open, Left(p, closing))
}

// Optional runs p and succeeds with def without consuming input if p fails.
func Optional[T any](p Parser[T], def T) Parser[T] {
	return Choice(p, Pure(def))
}

// Lazy defers building a parser until it is first used, so that grammar
// rules can refer to themselves.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var (
		once sync.Once
		p    Parser[T]
	)
	return Func[T](func(input string) (T, string, bool) {
		once.Do(func() { p = build() })
		return p.Parse(input)
	})
}
