package machine

import "github.com/mna/ember/lang/types"

// Frame records one active invocation of a compiled function: the function
// itself, its instruction pointer, and the stack slot its locals and
// parameters start at. Built-in calls don't get a frame of their own; the
// machine invokes them directly.
type Frame struct {
	fn          *types.CompiledFunction
	ip          int
	basePointer int
}

// NewFrame creates a frame for fn, with its locals region starting at
// basePointer on the shared value stack.
func NewFrame(fn *types.CompiledFunction, basePointer int) *Frame {
	return &Frame{fn: fn, ip: -1, basePointer: basePointer}
}

// Instructions returns the frame's function's instruction stream.
func (f *Frame) Instructions() []byte {
	return f.fn.Instructions
}
