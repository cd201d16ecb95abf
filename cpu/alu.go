package cpu

// alu runs a two-register ALU opcode. The first operand register is the
// destination; results wrap at 8 bits.
func (cpu *Cpu) alu(op Opcode) (next int, running bool, err error) {
	switch op {
	case ADD, MUL:
	default:
		err = ErrAluOp(op)
		return
	}

	args, err := cpu.operands(2)
	if err != nil {
		return
	}

	a, err := cpu.Register.Get(int(args[0]))
	if err != nil {
		return
	}
	b, err := cpu.Register.Get(int(args[1]))
	if err != nil {
		return
	}

	output, err := doAlu(op, a, b)
	if err != nil {
		return
	}

	cpu.Register[args[0]] = output

	next = cpu.Pc + 3
	running = true
	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op Opcode, input uint8, value uint8) (output uint8, err error) {
	switch op {
	case ADD:
		output = input + value
	case MUL:
		output = input * value
	default:
		err = ErrAluOp(op)
	}

	return
}
