package cpu

// push decrements the stack pointer and stores value at the new top.
// The stack may not grow into the loaded program, nor below address 0.
func (cpu *Cpu) push(value uint8) (err error) {
	sp := int(cpu.Register[SP]) - 1
	if sp < cpu.ProgramEnd {
		err = ErrStackOverflow
		return
	}

	err = cpu.Memory.Write(sp, value)
	if err != nil {
		return
	}

	cpu.Register[SP] = uint8(sp)
	return
}

// pop reads the value at the top of the stack and increments the stack
// pointer. The stack pointer may not wrap past the top of memory.
func (cpu *Cpu) pop() (value uint8, err error) {
	sp := int(cpu.Register[SP])
	if sp+1 >= MEMORY_SIZE {
		err = ErrStackUnderflow
		return
	}

	value = cpu.Memory[sp]
	cpu.Register[SP] = uint8(sp + 1)
	return
}

// popRegister loads register index from the top of the stack, then
// increments the stack pointer. Popping into SP leaves it one past the
// popped value.
func (cpu *Cpu) popRegister(index uint8) (err error) {
	_, err = cpu.Register.Get(int(index))
	if err != nil {
		return
	}

	sp := int(cpu.Register[SP])
	if sp+1 >= MEMORY_SIZE {
		err = ErrStackUnderflow
		return
	}

	cpu.Register[index] = cpu.Memory[sp]
	cpu.Register[SP]++
	return
}
