package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"os"
	"strings"
	"sync/atomic"

	"github.com/ezrec/ls8/io"
)

// Console is the output device used by PRN.
type Console io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"REGISTERS":   fmt.Sprintf("%v", REGISTERS),
	"SP_INIT":     fmt.Sprintf("0x%x", SP_INIT),
}

// State is the execution state of the CPU.
type State int

const (
	STATE_RUNNING = State(0) // Executing instructions.
	STATE_HALTED  = State(1) // Stopped by HLT.
	STATE_FAILED  = State(2) // Stopped by a fault.
)

func (st State) String() string {
	switch st {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_FAILED:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(st))
}

// Cpu is the simulation context for the LS-8 processor.
//
// A Cpu is owned by one caller for the duration of a Tick or Run; a
// concurrent or re-entrant call fails with ErrBusy.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory    // Program and stack memory.
	Register Registers // Register bank. Register[SP] is the stack pointer.
	Flags    Flags     // Flags from the last CMP.
	Pc       int       // Address of the next opcode.

	State State // Current execution state.
	Err   error // Fault that moved the CPU to STATE_FAILED.

	Console Console // Output device for PRN.

	ProgramEnd int // First address past the loaded program.
	Ticks      int // Executed instruction counter.

	busy atomic.Bool
}

// NewCpu creates a new CPU printing to standard output.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Console: &io.Tape{Output: os.Stdout},
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Sets the stack pointer to SP_INIT and the program counter to 0.
// - Zeros the tick counter and returns to STATE_RUNNING.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register[SP] = SP_INIT
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.State = STATE_RUNNING
	cpu.Err = nil
	cpu.ProgramEnd = 0
	cpu.Ticks = 0

	if cpu.Console != nil {
		cpu.Console.Rewind()
	}
}

// Load copies a program image into memory starting at address 0.
func (cpu *Cpu) Load(code []uint8) (err error) {
	if len(code) > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Memory[:], code)
	cpu.ProgramEnd = len(code)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(code))
	}

	return
}

// peek reads memory for diagnostics, returning 0 outside the address space.
func (cpu *Cpu) peek(addr int) uint8 {
	value, _ := cpu.Memory.Read(addr)
	return value
}

// Trace returns a single line summary of the CPU state.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.peek(cpu.Pc),
		cpu.peek(cpu.Pc+1),
		cpu.peek(cpu.Pc+2),
	)
	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"state",
		"flags",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6",
		"sp",
		"top",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X %v", cpu.Pc, Opcode(cpu.peek(cpu.Pc)))
		case "state":
			strval = cpu.State.String()
		case "flags":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			val := cpu.Register[reg[1]-'0']
			strval = fmt.Sprintf("%02X (%d)", val, val)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[SP])
		case "top":
			sp := int(cpu.Register[SP])
			if sp < SP_INIT {
				strval = fmt.Sprintf("%02X", cpu.peek(sp))
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Tick executes the instruction at the program counter.
//
// A fault moves the CPU to STATE_FAILED and leaves memory, registers, flags
// and the program counter as they were before the instruction.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	err = cpu.tick()
	return
}

// Run executes instructions until HLT or a fault.
// Returns nil on HLT, or the fault.
func (cpu *Cpu) Run() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	for cpu.State == STATE_RUNNING {
		err = cpu.tick()
		if err != nil {
			return
		}
	}

	if cpu.State == STATE_FAILED {
		err = cpu.Err
	}

	return
}

func (cpu *Cpu) tick() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAILED:
		return cpu.Err
	}

	pc := cpu.Pc
	var op Opcode

	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: pc, Opcode: op, Err: err}
			cpu.State = STATE_FAILED
			cpu.Err = err
			if cpu.Verbose {
				log.Printf("cpu: %v", err)
			}
		}
	}()

	value, err := cpu.Memory.Read(pc)
	if err != nil {
		return
	}
	op = Opcode(value)

	if cpu.Verbose {
		log.Printf("cpu: %v %v", cpu.Trace(), op)
	}

	var next int
	var running bool
	if op.IsAlu() {
		next, running, err = cpu.alu(op)
	} else {
		next, running, err = cpu.execute(op)
	}
	if err != nil {
		return
	}

	cpu.Pc = next
	cpu.Ticks++

	if !running {
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Printf("cpu: halted after %d ticks", cpu.Ticks)
		}
	}

	return
}

// operands fetches the operand bytes that follow the opcode at the
// program counter.
func (cpu *Cpu) operands(count int) (args [2]uint8, err error) {
	for n := range count {
		args[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}
	return
}

// execute runs a non-ALU opcode, returning the next program counter and
// whether execution continues.
func (cpu *Cpu) execute(op Opcode) (next int, running bool, err error) {
	args, err := cpu.operands(op.Operands())
	if err != nil {
		return
	}

	next = cpu.Pc + op.Width()
	running = true

	reg := func(index uint8) (value uint8) {
		if err == nil {
			value, err = cpu.Register.Get(int(index))
		}
		return
	}

	switch op {
	case HLT:
		next = cpu.Pc
		running = false
	case LDI:
		err = cpu.Register.Set(int(args[0]), args[1])
	case PRN:
		value := reg(args[0])
		if err != nil {
			return
		}
		err = cpu.print(value)
	case PUSH:
		value := reg(args[0])
		if err != nil {
			return
		}
		err = cpu.push(value)
	case POP:
		err = cpu.popRegister(args[0])
	case CALL:
		target := reg(args[0])
		if err != nil {
			return
		}
		ret := cpu.Pc + 2
		if ret >= MEMORY_SIZE {
			err = ErrRange{What: "return address", Value: ret}
			return
		}
		err = cpu.push(uint8(ret))
		next = int(target)
	case RET:
		var value uint8
		value, err = cpu.pop()
		next = int(value)
	case CMP:
		a := reg(args[0])
		b := reg(args[1])
		if err != nil {
			return
		}
		cpu.Flags = Compare(a, b)
	case JMP:
		next = int(reg(args[0]))
	case JEQ:
		target := reg(args[0])
		if cpu.Flags.Equal() {
			next = int(target)
		}
	case JNE:
		target := reg(args[0])
		if !cpu.Flags.Equal() {
			next = int(target)
		}
	default:
		err = ErrOpcode(op)
	}

	return
}

// print sends a value to the console.
func (cpu *Cpu) print(value uint8) (err error) {
	if cpu.Console == nil {
		err = ErrConsoleMissing
		return
	}

	err = cpu.Console.Send(value)
	return
}
