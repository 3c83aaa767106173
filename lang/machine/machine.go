// Package machine implements the stack-based virtual machine that executes
// compiled bytecode: a flat value stack shared across all call frames, a
// separate frame stack, and a fetch-decode-execute loop over a single switch
// on the opcode byte. Each call frame carves its locals directly out of the
// shared stack at its base pointer, rather than allocating its own.
package machine

import (
	"fmt"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/types"
)

const (
	stackSize   = 2048
	globalsSize = 65536
	maxFrames   = 1024
)

// VM executes a single compiled program to completion.
type VM struct {
	constants []types.Value

	stack []types.Value
	sp    int // points to the next free slot; top of stack is stack[sp-1]

	globals []types.Value

	frames      []*Frame
	framesIndex int
}

// New creates a VM ready to run bc, with a fresh globals vector.
func New(bc *compiler.Bytecode) *VM {
	return NewWithGlobalsStore(bc, make([]types.Value, globalsSize))
}

// NewWithGlobalsStore creates a VM that shares globals with a previous run,
// so a REPL-style host can persist bindings across successive calls to Run.
func NewWithGlobalsStore(bc *compiler.Bytecode, globals []types.Value) *VM {
	mainFn := &types.CompiledFunction{Instructions: bc.Instructions}
	mainFrame := NewFrame(mainFn, 0)

	frames := make([]*Frame, maxFrames)
	frames[0] = mainFrame

	return &VM{
		constants:   bc.Constants,
		stack:       make([]types.Value, stackSize),
		globals:     globals,
		frames:      frames,
		framesIndex: 1,
	}
}

func (vm *VM) currentFrame() *Frame {
	return vm.frames[vm.framesIndex-1]
}

func (vm *VM) pushFrame(f *Frame) {
	vm.frames[vm.framesIndex] = f
	vm.framesIndex++
}

func (vm *VM) popFrame() *Frame {
	vm.framesIndex--
	return vm.frames[vm.framesIndex]
}

// LastPoppedStackElem returns the most recently popped value, which is the
// VM's result once the run loop halts.
func (vm *VM) LastPoppedStackElem() types.Value {
	if vm.sp >= len(vm.stack) {
		return types.NullValue
	}
	if v := vm.stack[vm.sp]; v != nil {
		return v
	}
	return types.NullValue
}

func (vm *VM) push(v types.Value) error {
	if vm.sp >= stackSize {
		return fmt.Errorf("stack overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() types.Value {
	v := vm.stack[vm.sp-1]
	vm.sp--
	return v
}

// Run drives the fetch-decode-execute loop to completion, aborting
// immediately on the first runtime error.
func (vm *VM) Run() error {
	for vm.currentFrame().ip < len(vm.currentFrame().Instructions())-1 {
		vm.currentFrame().ip++
		ip := vm.currentFrame().ip
		ins := vm.currentFrame().Instructions()
		op := compiler.Opcode(ins[ip])

		switch op {
		case compiler.OpConstant:
			idx := compiler.ReadUint16(ins[ip+1:])
			vm.currentFrame().ip += 2
			if err := vm.push(vm.constants[idx]); err != nil {
				return err
			}

		case compiler.OpAdd, compiler.OpSub, compiler.OpMul, compiler.OpDiv:
			if err := vm.executeBinaryOp(op); err != nil {
				return err
			}

		case compiler.OpTrue:
			if err := vm.push(types.True); err != nil {
				return err
			}
		case compiler.OpFalse:
			if err := vm.push(types.False); err != nil {
				return err
			}
		case compiler.OpNull:
			if err := vm.push(types.NullValue); err != nil {
				return err
			}

		case compiler.OpEqual, compiler.OpNotEqual, compiler.OpGreaterThan:
			if err := vm.executeComparison(op); err != nil {
				return err
			}

		case compiler.OpBang:
			if err := vm.executeBangOperator(); err != nil {
				return err
			}
		case compiler.OpMinus:
			if err := vm.executeMinusOperator(); err != nil {
				return err
			}

		case compiler.OpPop:
			vm.pop()

		case compiler.OpJump:
			pos := int(compiler.ReadUint16(ins[ip+1:]))
			vm.currentFrame().ip = pos - 1

		case compiler.OpJumpNotTruthy:
			pos := int(compiler.ReadUint16(ins[ip+1:]))
			vm.currentFrame().ip += 2
			if !isTruthy(vm.pop()) {
				vm.currentFrame().ip = pos - 1
			}

		case compiler.OpSetGlobal:
			idx := compiler.ReadUint16(ins[ip+1:])
			vm.currentFrame().ip += 2
			vm.globals[idx] = vm.pop()

		case compiler.OpGetGlobal:
			idx := compiler.ReadUint16(ins[ip+1:])
			vm.currentFrame().ip += 2
			if err := vm.push(vm.globals[idx]); err != nil {
				return err
			}

		case compiler.OpSetLocal:
			idx := int(compiler.ReadUint8(ins[ip+1:]))
			vm.currentFrame().ip++
			vm.stack[vm.currentFrame().basePointer+idx] = vm.pop()

		case compiler.OpGetLocal:
			idx := int(compiler.ReadUint8(ins[ip+1:]))
			vm.currentFrame().ip++
			if err := vm.push(vm.stack[vm.currentFrame().basePointer+idx]); err != nil {
				return err
			}

		case compiler.OpGetBuiltin:
			idx := int(compiler.ReadUint8(ins[ip+1:]))
			vm.currentFrame().ip++
			if idx >= len(types.Builtins) {
				return fmt.Errorf("undefined builtin index: %d", idx)
			}
			if err := vm.push(types.Builtins[idx]); err != nil {
				return err
			}

		case compiler.OpArray:
			n := int(compiler.ReadUint16(ins[ip+1:]))
			vm.currentFrame().ip += 2
			arr := vm.buildArray(vm.sp-n, vm.sp)
			vm.sp -= n
			if err := vm.push(arr); err != nil {
				return err
			}

		case compiler.OpHash:
			n := int(compiler.ReadUint16(ins[ip+1:]))
			vm.currentFrame().ip += 2
			hash, err := vm.buildHash(vm.sp-n, vm.sp)
			if err != nil {
				return err
			}
			vm.sp -= n
			if err := vm.push(hash); err != nil {
				return err
			}

		case compiler.OpIndex:
			index := vm.pop()
			left := vm.pop()
			if err := vm.executeIndex(left, index); err != nil {
				return err
			}

		case compiler.OpCall:
			nargs := int(compiler.ReadUint8(ins[ip+1:]))
			vm.currentFrame().ip++
			if err := vm.executeCall(nargs); err != nil {
				return err
			}

		case compiler.OpReturnValue:
			retVal := vm.pop()
			if vm.framesIndex == 1 {
				// a return at top level ends the run; retVal stays the last
				// popped value.
				return nil
			}
			frame := vm.popFrame()
			vm.sp = frame.basePointer - 1
			if err := vm.push(retVal); err != nil {
				return err
			}

		case compiler.OpReturn:
			frame := vm.popFrame()
			vm.sp = frame.basePointer - 1
			if err := vm.push(types.NullValue); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown opcode: %d", op)
		}
	}
	return nil
}

func (vm *VM) buildArray(startIdx, endIdx int) *types.Array {
	elements := make([]types.Value, endIdx-startIdx)
	copy(elements, vm.stack[startIdx:endIdx])
	return &types.Array{Elements: elements}
}

func (vm *VM) buildHash(startIdx, endIdx int) (*types.Hash, error) {
	hash := types.NewHash((endIdx - startIdx) / 2)
	for i := startIdx; i < endIdx; i += 2 {
		key := vm.stack[i]
		value := vm.stack[i+1]

		hashable, ok := key.(types.Hashable)
		if !ok {
			return nil, fmt.Errorf("unusable as hash key: %s", key.Type())
		}
		hash.Set(hashable, value)
	}
	return hash, nil
}

func (vm *VM) executeIndex(left, index types.Value) error {
	switch {
	case left.Type() == "ARRAY" && index.Type() == "INTEGER":
		arr := left.(*types.Array)
		i := index.(*types.Int).Value
		if i < 0 || i >= int64(len(arr.Elements)) {
			return vm.push(types.NullValue)
		}
		return vm.push(arr.Elements[i])

	case left.Type() == "HASH":
		hash := left.(*types.Hash)
		hashable, ok := index.(types.Hashable)
		if !ok {
			return fmt.Errorf("unusable as hash key: %s", index.Type())
		}
		v, ok := hash.Get(hashable)
		if !ok {
			return vm.push(types.NullValue)
		}
		return vm.push(v)

	default:
		return fmt.Errorf("index operator not supported: %s", left.Type())
	}
}

func (vm *VM) executeCall(nargs int) error {
	callee := vm.stack[vm.sp-1-nargs]

	switch callee := callee.(type) {
	case *types.CompiledFunction:
		if nargs != callee.NumParameters {
			return fmt.Errorf("wrong number of arguments: want=%d got=%d", callee.NumParameters, nargs)
		}
		frame := NewFrame(callee, vm.sp-nargs)
		vm.pushFrame(frame)
		vm.sp = frame.basePointer + callee.NumLocals
		return nil

	case *types.Builtin:
		args := vm.stack[vm.sp-nargs : vm.sp]
		result := callee.Fn(args...)
		vm.sp = vm.sp - nargs - 1
		if errVal, ok := result.(*types.Error); ok {
			return fmt.Errorf("%s", errVal.Message)
		}
		if result == nil {
			result = types.NullValue
		}
		return vm.push(result)

	default:
		return fmt.Errorf("not a function: %s", callee.Type())
	}
}

func isTruthy(v types.Value) bool {
	switch v := v.(type) {
	case *types.Bool:
		return v.Value
	case *types.Null:
		return false
	default:
		return true
	}
}
