// Package casing converts object keys between the camelCase names used by
// callers and the snake_case names used on the wire.
//
// The conversion is purely syntactic. Acronyms are not recognised, so
// "URLPath" becomes "_u_r_l_path".
package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Direction selects the target convention of a deep conversion.
type Direction int

const (
	// Snake converts keys to snake_case.
	Snake Direction = iota
	// Camel converts keys to camelCase.
	Camel
)

// ToSnake inserts an underscore before every uppercase ASCII letter and
// lowercases it: "bookUid" becomes "book_uid".
func ToSnake(s string) string {
	if !hasUpper(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToCamel removes each "_x" pair, where x is a lowercase ASCII letter, and
// uppercases x: "book_uid" becomes "bookUid".
func ToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToUpperCamel is ToCamel with the first character uppercased.
func ToUpperCamel(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + ToCamel(s[size:])
}

// DeepSnake returns a copy of v with every mapping key converted to
// snake_case.
func DeepSnake(v interface{}) interface{} {
	return Deep(v, Snake)
}

// DeepCamel returns a copy of v with every mapping key converted to
// camelCase.
func DeepCamel(v interface{}) interface{} {
	return Deep(v, Camel)
}

// Deep walks v and converts the keys of every map[string]interface{} it
// finds. Slices keep their length and order; scalars pass through. The input
// is never modified.
func Deep(v interface{}, dir Direction) interface{} {
	convert := ToSnake
	if dir == Camel {
		convert = ToCamel
	}
	return deep(v, convert)
}

func deep(v interface{}, convert func(string) string) interface{} {
	switch val := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = deep(item, convert)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = deep(item, convert)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[convert(k)] = deep(item, convert)
		}
		return out
	default:
		return v
	}
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
