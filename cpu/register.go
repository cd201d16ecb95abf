package cpu

import (
	"strings"
)

const (
	REGISTERS = 8    // Count of general purpose registers.
	SP        = 7    // Register reserved as the stack pointer.
	SP_INIT   = 0xf4 // Initial stack pointer, just below the top of memory.
)

// Registers is the general purpose register bank.
type Registers [REGISTERS]uint8

// Get returns the value of register index.
func (regs *Registers) Get(index int) (value uint8, err error) {
	if index < 0 || index >= len(regs) {
		err = ErrRange{What: "register", Value: index}
		return
	}

	value = regs[index]
	return
}

// Set replaces the value of register index.
func (regs *Registers) Set(index int, value uint8) (err error) {
	if index < 0 || index >= len(regs) {
		err = ErrRange{What: "register", Value: index}
		return
	}

	regs[index] = value
	return
}

// Flags is the condition register written by CMP.
type Flags uint8

const (
	FLAG_EQ = Flags(0b001) // Equal.
	FLAG_GT = Flags(0b010) // Greater than.
	FLAG_LT = Flags(0b100) // Less than.
)

// Compare returns the flag state for comparing a with b.
// Exactly one flag is set.
func Compare(a, b uint8) Flags {
	switch {
	case a == b:
		return FLAG_EQ
	case a > b:
		return FLAG_GT
	default:
		return FLAG_LT
	}
}

func (fl Flags) Equal() bool   { return fl&FLAG_EQ != 0 }
func (fl Flags) Greater() bool { return fl&FLAG_GT != 0 }
func (fl Flags) Less() bool    { return fl&FLAG_LT != 0 }

// String returns the set flags as letters, or "-" if none are set.
func (fl Flags) String() string {
	var sb strings.Builder
	if fl.Less() {
		sb.WriteByte('L')
	}
	if fl.Greater() {
		sb.WriteByte('G')
	}
	if fl.Equal() {
		sb.WriteByte('E')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
