package compiler

import "encoding/binary"

// Instructions is a flat, big-endian encoded bytecode stream.
type Instructions []byte

// Make encodes a single instruction: the opcode byte followed by its
// operands, each packed into the fixed big-endian width OperandWidths
// records for that opcode.
func Make(op Opcode, operands ...int) Instructions {
	widths := OperandWidths[op]

	instrLen := 1
	for _, w := range widths {
		instrLen += w
	}

	instr := make(Instructions, instrLen)
	instr[0] = byte(op)

	offset := 1
	for i, operand := range operands {
		width := widths[i]
		switch width {
		case 2:
			binary.BigEndian.PutUint16(instr[offset:], uint16(operand))
		case 1:
			instr[offset] = byte(operand)
		}
		offset += width
	}
	return instr
}

// ReadUint16 decodes a big-endian uint16 operand at the start of ins.
func ReadUint16(ins Instructions) uint16 {
	return binary.BigEndian.Uint16(ins)
}

// ReadUint8 decodes a single-byte operand at the start of ins.
func ReadUint8(ins Instructions) uint8 {
	return uint8(ins[0])
}

// ReadOperands decodes all operands of op from ins and returns them along
// with the number of bytes read, used by the disassembler.
func ReadOperands(op Opcode, ins Instructions) ([]int, int) {
	widths := OperandWidths[op]
	operands := make([]int, len(widths))

	offset := 0
	for i, width := range widths {
		switch width {
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		case 1:
			operands[i] = int(ReadUint8(ins[offset:]))
		}
		offset += width
	}
	return operands, offset
}
