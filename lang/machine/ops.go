package machine

import (
	"fmt"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/types"
)

var binOpSymbols = map[compiler.Opcode]string{
	compiler.OpAdd: "+",
	compiler.OpSub: "-",
	compiler.OpMul: "*",
	compiler.OpDiv: "/",
}

func (vm *VM) executeBinaryOp(op compiler.Opcode) error {
	right := vm.pop()
	left := vm.pop()

	leftInt, leftIsInt := left.(*types.Int)
	rightInt, rightIsInt := right.(*types.Int)
	if leftIsInt && rightIsInt {
		return vm.executeBinaryIntOp(op, leftInt, rightInt)
	}

	leftStr, leftIsStr := left.(*types.String)
	rightStr, rightIsStr := right.(*types.String)
	if leftIsStr && rightIsStr {
		if op != compiler.OpAdd {
			return fmt.Errorf("unknown operator: %s %s %s", left.Type(), binOpSymbols[op], right.Type())
		}
		return vm.push(&types.String{Value: leftStr.Value + rightStr.Value})
	}

	return fmt.Errorf("type mismatch: %s %s %s", left.Type(), binOpSymbols[op], right.Type())
}

func (vm *VM) executeBinaryIntOp(op compiler.Opcode, left, right *types.Int) error {
	var result int64
	switch op {
	case compiler.OpAdd:
		result = left.Value + right.Value
	case compiler.OpSub:
		result = left.Value - right.Value
	case compiler.OpMul:
		result = left.Value * right.Value
	case compiler.OpDiv:
		if right.Value == 0 {
			return fmt.Errorf("division by zero")
		}
		result = left.Value / right.Value
	default:
		return fmt.Errorf("unknown integer operator: %s", op)
	}
	return vm.push(&types.Int{Value: result})
}

func (vm *VM) executeComparison(op compiler.Opcode) error {
	right := vm.pop()
	left := vm.pop()

	leftInt, leftIsInt := left.(*types.Int)
	rightInt, rightIsInt := right.(*types.Int)

	switch {
	case op == compiler.OpGreaterThan:
		if !leftIsInt || !rightIsInt {
			return fmt.Errorf("type mismatch: %s > %s", left.Type(), right.Type())
		}
		return vm.push(types.BoolOf(leftInt.Value > rightInt.Value))

	case op == compiler.OpEqual:
		return vm.push(types.BoolOf(valuesEqual(left, right)))

	case op == compiler.OpNotEqual:
		return vm.push(types.BoolOf(!valuesEqual(left, right)))

	default:
		return fmt.Errorf("unknown comparison operator: %s", op)
	}
}

// valuesEqual implements structural equality for
// ==/!=: same-kind scalars compare by value, everything else compares by
// identity (values obtained from the same stack slot).
func valuesEqual(a, b types.Value) bool {
	switch a := a.(type) {
	case *types.Int:
		b, ok := b.(*types.Int)
		return ok && a.Value == b.Value
	case *types.Bool:
		b, ok := b.(*types.Bool)
		return ok && a.Value == b.Value
	case *types.Null:
		_, ok := b.(*types.Null)
		return ok
	case *types.String:
		b, ok := b.(*types.String)
		return ok && a.Value == b.Value
	default:
		return a == b
	}
}

func (vm *VM) executeBangOperator() error {
	operand := vm.pop()
	switch operand {
	case types.True:
		return vm.push(types.False)
	case types.False:
		return vm.push(types.True)
	case types.NullValue:
		return vm.push(types.True)
	default:
		return vm.push(types.False)
	}
}

func (vm *VM) executeMinusOperator() error {
	operand := vm.pop()
	i, ok := operand.(*types.Int)
	if !ok {
		return fmt.Errorf("unknown operator: -%s", operand.Type())
	}
	return vm.push(&types.Int{Value: -i.Value})
}
