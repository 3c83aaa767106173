// Package compiler lowers an ast.Program into a flat bytecode stream the
// machine package executes.
//
// The opcode set is closed and every operand is a fixed 1- or 2-byte
// big-endian width, so there is no range test to classify an opcode: each
// opcode's operand widths are looked up directly in OperandWidths.
package compiler

import "fmt"

// Opcode identifies a single bytecode instruction.
type Opcode uint8

//nolint:revive
const (
	OpConstant Opcode = iota //           - OpConstant<i16>  value

	OpAdd //   a b OpAdd -   a+b
	OpSub //   a b OpSub -   a-b
	OpMul //   a b OpMul -   a*b
	OpDiv //   a b OpDiv -   a/b

	OpPop //   x OpPop -

	OpTrue  // - OpTrue  true
	OpFalse // - OpFalse false
	OpNull  // - OpNull  null

	OpEqual       //   a b OpEqual       -   a==b
	OpNotEqual    //   a b OpNotEqual    -   a!=b
	OpGreaterThan //   a b OpGreaterThan -   a>b

	OpMinus // x OpMinus -  -x
	OpBang  // x OpBang  -  !x

	OpJumpNotTruthy //   cond OpJumpNotTruthy<a16> -   jump to a16 if cond is falsy
	OpJump          //      - OpJump<a16>          -   unconditional jump to a16

	OpSetGlobal // value OpSetGlobal<i16> -
	OpGetGlobal //     - OpGetGlobal<i16> value

	OpSetLocal // value OpSetLocal<i8> -
	OpGetLocal //     - OpGetLocal<i8> value

	OpGetBuiltin // - OpGetBuiltin<i8> value

	OpArray //   x1..xn OpArray<n16> array
	OpHash  // k1 v1..kn vn OpHash<n16> hash
	OpIndex //   left index OpIndex -    elem

	OpCall         // fn arg1..argn OpCall<nargs8> result  (calls fn with nargs8 arguments)
	OpReturnValue  //   value OpReturnValue -               (pop frame, push value)
	OpReturn       //       - OpReturn      -               (pop frame, push null)

	numOpcodes
)

// OperandWidths gives, for each opcode, the byte width of each of its
// operands, in order. An empty slice means the opcode takes no operands.
// Every width here is fixed; there is no variable-width encoding to size
// dynamically.
var OperandWidths = [numOpcodes][]int{
	OpConstant: {2},

	OpAdd: {}, OpSub: {}, OpMul: {}, OpDiv: {},
	OpPop: {},
	OpTrue: {}, OpFalse: {}, OpNull: {},
	OpEqual: {}, OpNotEqual: {}, OpGreaterThan: {},
	OpMinus: {}, OpBang: {},

	OpJumpNotTruthy: {2},
	OpJump:          {2},

	OpSetGlobal: {2},
	OpGetGlobal: {2},
	OpSetLocal:  {1},
	OpGetLocal:  {1},

	OpGetBuiltin: {1},

	OpArray: {2},
	OpHash:  {2},
	OpIndex: {},

	OpCall:        {1},
	OpReturnValue: {},
	OpReturn:      {},
}

var opcodeNames = [numOpcodes]string{
	OpConstant:      "OpConstant",
	OpAdd:           "OpAdd",
	OpSub:           "OpSub",
	OpMul:           "OpMul",
	OpDiv:           "OpDiv",
	OpPop:           "OpPop",
	OpTrue:          "OpTrue",
	OpFalse:         "OpFalse",
	OpNull:          "OpNull",
	OpEqual:         "OpEqual",
	OpNotEqual:      "OpNotEqual",
	OpGreaterThan:   "OpGreaterThan",
	OpMinus:         "OpMinus",
	OpBang:          "OpBang",
	OpJumpNotTruthy: "OpJumpNotTruthy",
	OpJump:          "OpJump",
	OpSetGlobal:     "OpSetGlobal",
	OpGetGlobal:     "OpGetGlobal",
	OpSetLocal:      "OpSetLocal",
	OpGetLocal:      "OpGetLocal",
	OpGetBuiltin:    "OpGetBuiltin",
	OpArray:         "OpArray",
	OpHash:          "OpHash",
	OpIndex:         "OpIndex",
	OpCall:          "OpCall",
	OpReturnValue:   "OpReturnValue",
	OpReturn:        "OpReturn",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("<invalid opcode %d>", op)
}
