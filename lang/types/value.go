// Package types defines the runtime value model shared by the compiler (for
// constant pooling) and the machine (for execution): a small tagged
// interface hierarchy covering exactly the value kinds this language needs,
// with no tuples, cells, metamaps or user-defined classes.
package types

import (
	"fmt"
	"strings"
)

// Value is implemented by every runtime value.
type Value interface {
	// String returns the value's textual representation, used by the puts
	// built-in and in error messages.
	String() string
	// Type returns a short string naming the value's type, e.g. "INTEGER".
	Type() string
}

// Int is a 64-bit signed integer value.
type Int struct{ Value int64 }

func (i *Int) String() string { return fmt.Sprintf("%d", i.Value) }
func (i *Int) Type() string   { return "INTEGER" }

// Bool is a boolean value. True and False below are the only instances ever
// produced, so identity comparison is equivalent to value comparison.
type Bool struct{ Value bool }

func (b *Bool) String() string { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) Type() string   { return "BOOLEAN" }

var (
	True  = &Bool{Value: true}
	False = &Bool{Value: false}
)

// BoolOf returns True or False for the given native bool:
// booleans are interned singletons.
func BoolOf(v bool) *Bool {
	if v {
		return True
	}
	return False
}

// Null is the unit value. There is only ever one instance, NullValue.
type Null struct{}

func (n *Null) String() string { return "null" }
func (n *Null) Type() string   { return "NULL" }

// NullValue is the sole Null instance.
var NullValue = &Null{}

// String is an immutable string value.
type String struct{ Value string }

func (s *String) String() string { return s.Value }
func (s *String) Type() string   { return "STRING" }

// Array is an ordered, mutable sequence of values.
type Array struct{ Elements []Value }

func (a *Array) String() string {
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
func (a *Array) Type() string { return "ARRAY" }

// Error wraps a runtime error message as a Value, so it can flow through the
// same channels as any other value until the machine aborts evaluation on
// it.
type Error struct{ Message string }

func (e *Error) String() string { return "ERROR: " + e.Message }
func (e *Error) Type() string   { return "ERROR" }

// Hashable is implemented by the value kinds that may be used as hash keys
//: integers, booleans and strings only.
type Hashable interface {
	Value
	HashKey() HashKey
}

// HashKey is a comparable summary of a hashable value, suitable as a map
// key. Str disambiguates string values so that hash collisions between
// distinct strings (Value) never collapse two different keys into one.
type HashKey struct {
	Type  string
	Value uint64
	Str   string
}

func (i *Int) HashKey() HashKey {
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

func (b *Bool) HashKey() HashKey {
	var v uint64
	if b.Value {
		v = 1
	}
	return HashKey{Type: b.Type(), Value: v}
}

func (s *String) HashKey() HashKey {
	return HashKey{Type: s.Type(), Value: fnv64(s.Value), Str: s.Value}
}

// fnv64 is a small non-cryptographic string hash, used only to spread string
// keys across the swiss-table buckets backing Hash; Str carries the actual
// value for exact equality.
func fnv64(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
