package types

import "fmt"

// CompiledFunction is the value produced by compiling a function literal: a
// flat instruction stream plus the frame-sizing metadata the machine needs
// to set up a call.
type CompiledFunction struct {
	Instructions  []byte
	NumLocals     int
	NumParameters int
}

func (f *CompiledFunction) String() string { return fmt.Sprintf("CompiledFunction[%p]", f) }
func (f *CompiledFunction) Type() string   { return "COMPILED_FUNCTION" }

// BuiltinFunction is the Go implementation backing a Builtin value.
type BuiltinFunction func(args ...Value) Value

// Builtin wraps one of the fixed built-in functions , addressed
// by name and by the index assigned to it in the builtin symbol scope.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) String() string { return "builtin function: " + b.Name }
func (b *Builtin) Type() string   { return "BUILTIN" }
