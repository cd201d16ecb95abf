package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	for _, op := range []Opcode{HLT, LDI, PRN, PUSH, POP, CALL, RET, CMP, JMP, JEQ, JNE, ADD, MUL, 0x00, 0xa1, 0xff} {
		f.Add(uint8(op), uint8(0), uint8(1), uint8(SP_INIT), uint8(0))
		f.Add(uint8(op), uint8(7), uint8(9), uint8(0xff), uint8(FLAG_EQ))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, arg1 uint8, arg2 uint8, sp uint8, flags uint8) {
		assert := assert.New(t)

		op := Opcode(opcode)

		cpu := NewCpu()
		console := &io.Temporary{Capacity: 4}
		cpu.Console = console
		cpu.Reset()

		cpu.Pc = 0x10
		cpu.ProgramEnd = 0x13
		cpu.Memory[0x10] = opcode
		cpu.Memory[0x11] = arg1
		cpu.Memory[0x12] = arg2
		cpu.Memory[0xf0] = 0xc0
		cpu.Register = Registers{0x50, 0x61, 0x72, 0x83, 0x94, 0xa5, 0xb6, sp}
		cpu.Flags = Flags(flags & 0x7)

		before := snap(cpu)

		err := cpu.Tick()
		if err != nil {
			known := []error{
				ErrUnknownOpcode,
				ErrUnsupportedOperation,
				ErrOutOfRange,
				ErrStackOverflow,
				ErrStackUnderflow,
			}
			found := false
			for _, kind := range known {
				if errors.Is(err, kind) {
					found = true
				}
			}
			assert.True(found, "%v: %v", op, err)
			assert.Equal(STATE_FAILED, cpu.State)
			assert.Equal(before, snap(cpu))
			assert.Equal(0, cpu.Ticks)
			return
		}

		assert.Equal(1, cpu.Ticks)
		assert.True(op.Valid(), "%v", op)

		switch op {
		case HLT:
			assert.Equal(STATE_HALTED, cpu.State)
			assert.Equal(0x10, cpu.Pc)
		case CALL, RET, JMP, JEQ, JNE:
			assert.Equal(STATE_RUNNING, cpu.State)
			assert.True(cpu.Pc >= 0 && cpu.Pc < MEMORY_SIZE)
		case CMP:
			assert.Equal(Compare(before.Register[arg1], before.Register[arg2]), cpu.Flags)
			assert.Equal(0x13, cpu.Pc)
		default:
			assert.Equal(STATE_RUNNING, cpu.State)
			assert.Equal(0x10+op.Width(), cpu.Pc)
		}
	})
}
