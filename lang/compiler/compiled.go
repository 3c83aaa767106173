package compiler

import (
	"fmt"
	"strings"

	"github.com/mna/ember/lang/types"
)

// Bytecode is the output of compiling a program: an instruction stream plus
// the pool of constants it references by index.
type Bytecode struct {
	Instructions Instructions
	Constants    []types.Value
}

// String disassembles the instruction stream into a human-readable listing,
// one instruction per line prefixed with its byte offset -- used for
// debugging, not consulted by the machine.
func (b Bytecode) String() string {
	var sb strings.Builder
	offset := 0
	ins := b.Instructions
	for offset < len(ins) {
		op := Opcode(ins[offset])
		operands, read := ReadOperands(op, ins[offset+1:])
		fmt.Fprintf(&sb, "%04d %s\n", offset, fmtInstruction(op, operands))
		offset += 1 + read
	}
	return sb.String()
}

func fmtInstruction(op Opcode, operands []int) string {
	widths := OperandWidths[op]
	if len(operands) != len(widths) {
		return fmt.Sprintf("ERROR: operand count %d does not match widths %d for %s", len(operands), len(widths), op)
	}

	switch len(operands) {
	case 0:
		return op.String()
	case 1:
		return fmt.Sprintf("%s %d", op, operands[0])
	}
	return fmt.Sprintf("%s %v", op, operands)
}
