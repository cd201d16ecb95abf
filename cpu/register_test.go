package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_GetSet(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	for n := range REGISTERS {
		assert.NoError(regs.Set(n, uint8(n*10)))
	}
	for n := range REGISTERS {
		value, err := regs.Get(n)
		assert.NoError(err)
		assert.Equal(uint8(n*10), value)
	}

	_, err := regs.Get(REGISTERS)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = regs.Get(-1)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.ErrorIs(regs.Set(REGISTERS, 1), ErrOutOfRange)
}

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Write(0, 1))
	assert.NoError(mem.Write(MEMORY_SIZE-1, 2))

	value, err := mem.Read(0)
	assert.NoError(err)
	assert.Equal(uint8(1), value)
	value, err = mem.Read(MEMORY_SIZE - 1)
	assert.NoError(err)
	assert.Equal(uint8(2), value)

	_, err = mem.Read(MEMORY_SIZE)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.EqualError(err, "address 256 out of range")
	_, err = mem.Read(-1)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.ErrorIs(mem.Write(MEMORY_SIZE, 0), ErrOutOfRange)
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-", Flags(0).String())
	assert.Equal("E", FLAG_EQ.String())
	assert.Equal("G", FLAG_GT.String())
	assert.Equal("L", FLAG_LT.String())
	assert.Equal("LGE", (FLAG_EQ | FLAG_GT | FLAG_LT).String())
}

func TestDoAlu(t *testing.T) {
	assert := assert.New(t)

	out, err := doAlu(ADD, 255, 1)
	assert.NoError(err)
	assert.Equal(uint8(0), out)

	out, err = doAlu(MUL, 255, 2)
	assert.NoError(err)
	assert.Equal(uint8(254), out)

	_, err = doAlu(CMP, 1, 1)
	assert.ErrorIs(err, ErrUnsupportedOperation)
	assert.EqualError(err, "unsupported alu operation 0xa7")
}
