package types

import "fmt"

// Builtins is the fixed, ordered list of built-in functions.
// Both the compiler (to resolve a bare name to a Builtin symbol index via
// OpGetBuiltin) and the machine (to look up the implementation by that same
// index) consult this single list, so the two always agree on indices.
var Builtins = []*Builtin{
	{Name: "len", Fn: builtinLen},
	{Name: "first", Fn: builtinFirst},
	{Name: "last", Fn: builtinLast},
	{Name: "rest", Fn: builtinRest},
	{Name: "push", Fn: builtinPush},
	{Name: "puts", Fn: builtinPuts},
}

// Puts is the sink Builtins.puts writes to. Tests can swap it out to capture
// output; it defaults to nil, meaning puts is a no-op (importing the eval
// package wires it to standard output, for Run and Session.Run alike).
var Puts func(string)

func newError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func builtinLen(args ...Value) Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	switch arg := args[0].(type) {
	case *String:
		return &Int{Value: int64(len(arg.Value))}
	case *Array:
		return &Int{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s", arg.Type())
	}
}

func builtinFirst(args ...Value) Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `first` must be ARRAY, got %s", args[0].Type())
	}
	if len(arr.Elements) > 0 {
		return arr.Elements[0]
	}
	return NullValue
}

func builtinLast(args ...Value) Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `last` must be ARRAY, got %s", args[0].Type())
	}
	if n := len(arr.Elements); n > 0 {
		return arr.Elements[n-1]
	}
	return NullValue
}

func builtinRest(args ...Value) Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `rest` must be ARRAY, got %s", args[0].Type())
	}
	if n := len(arr.Elements); n > 0 {
		rest := make([]Value, n-1)
		copy(rest, arr.Elements[1:])
		return &Array{Elements: rest}
	}
	return NullValue
}

func builtinPush(args ...Value) Value {
	if len(args) != 2 {
		return newError("wrong number of arguments. got=%d, want=2", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `push` must be ARRAY, got %s", args[0].Type())
	}
	newElems := make([]Value, len(arr.Elements), len(arr.Elements)+1)
	copy(newElems, arr.Elements)
	newElems = append(newElems, args[1])
	return &Array{Elements: newElems}
}

func builtinPuts(args ...Value) Value {
	for _, a := range args {
		if Puts != nil {
			Puts(a.String())
		}
	}
	return NullValue
}
