// Package jsonparse is a JSON grammar written with the parsec combinators.
package jsonparse

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Value is a parsed JSON value: Null, Bool, Number, String, Array or Object.
type Value interface {
	json.Marshaler
	isValue()
}

// Null is the JSON literal null.
type Null struct{}

// Bool is the JSON literal true or false.
type Bool bool

// Number is a JSON number. All numbers are held as float64.
type Number float64

// String is a JSON string with its escapes decoded.
type String string

// Array is an ordered JSON array.
type Array []Value

// Object maps member names to values. A repeated name keeps the last value.
type Object map[string]Value

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// MarshalJSON encodes null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON encodes true or false.
func (b Bool) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(b))), nil
}

// MarshalJSON encodes n the way encoding/json encodes a float64.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// MarshalJSON encodes s as a quoted, escaped JSON string.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// MarshalJSON encodes a; a nil Array encodes as [].
func (a Array) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Value(a))
}

// MarshalJSON encodes o with its keys sorted; a nil Object encodes as {}.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(o))
}

// Keys returns the member names of o in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Kind names the variant of v.
func Kind(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Equal reports whether a and b are the same JSON value.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Null, Bool, Number, String:
		return a == b
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case Object:
		b, ok := b.(Object)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Encode writes v as JSON text, indented by indent when it is non-empty.
func Encode(v Value, indent string) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
