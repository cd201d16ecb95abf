package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the byte that selects an LS-8 instruction.
//
// The encoding carries the operand count in the top two bits and marks ALU
// operations with bit 5, but dispatch never derives behavior from those
// fields: every opcode is listed explicitly.
type Opcode uint8

const (
	HLT  = Opcode(0b0000_0001) // Halt.
	LDI  = Opcode(0b1000_0010) // Load immediate.
	PRN  = Opcode(0b0100_0111) // Print register.
	PUSH = Opcode(0b0100_0101) // Push register.
	POP  = Opcode(0b0100_0110) // Pop register.
	CALL = Opcode(0b0101_0000) // Call subroutine at register.
	RET  = Opcode(0b0001_0001) // Return from subroutine.
	CMP  = Opcode(0b1010_0111) // Compare registers.
	JMP  = Opcode(0b0101_0100) // Jump to register.
	JEQ  = Opcode(0b0101_0101) // Jump to register if equal.
	JNE  = Opcode(0b0101_0110) // Jump to register if not equal.
	ADD  = Opcode(0b1010_0000) // ALU add.
	MUL  = Opcode(0b1010_0010) // ALU multiply.
)

const (
	OPCODE_ALU_MASK  = Opcode(0b1110_0000) // Mask of the ALU class bits.
	OPCODE_ALU_CLASS = Opcode(0b1010_0000) // Two-operand ALU operation.
)

// opcodeInfo describes one opcode.
type opcodeInfo struct {
	name  string
	width int
}

var opcodeTable = map[Opcode]opcodeInfo{
	HLT:  {"HLT", 1},
	LDI:  {"LDI", 3},
	PRN:  {"PRN", 2},
	PUSH: {"PUSH", 2},
	POP:  {"POP", 2},
	CALL: {"CALL", 2},
	RET:  {"RET", 1},
	CMP:  {"CMP", 3},
	JMP:  {"JMP", 2},
	JEQ:  {"JEQ", 2},
	JNE:  {"JNE", 2},
	ADD:  {"ADD", 3},
	MUL:  {"MUL", 3},
}

// opcodeNames maps mnemonics to opcodes.
var opcodeNames = func() map[string]Opcode {
	names := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		names[info.name] = op
	}
	return names
}()

// OpcodeByName returns the opcode for a mnemonic, ignoring case.
func OpcodeByName(name string) (op Opcode, ok bool) {
	op, ok = opcodeNames[strings.ToUpper(name)]
	return
}

// Valid returns true if the opcode has an instruction definition.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// IsAlu returns true if the opcode is routed to the ALU.
// Unimplemented members of the ALU class are still routed there, and
// fail as unsupported operations.
func (op Opcode) IsAlu() bool {
	return (op & OPCODE_ALU_MASK) == OPCODE_ALU_CLASS && op != CMP
}

// Width returns the instruction length in bytes, including the opcode,
// or zero for an unknown opcode.
func (op Opcode) Width() int {
	return opcodeTable[op].width
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	width := op.Width()
	if width == 0 {
		return 0
	}
	return width - 1
}

// String returns the mnemonic, or the hex value for an unknown opcode.
func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("0x%02X", uint8(op))
	}
	return info.name
}
