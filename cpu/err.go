package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrUnknownOpcode        = errors.New(f("unknown opcode"))
	ErrUnsupportedOperation = errors.New(f("unsupported alu operation"))
	ErrOutOfRange           = errors.New(f("out of range"))
	ErrStackOverflow        = errors.New(f("stack overflow"))
	ErrStackUnderflow       = errors.New(f("stack underflow"))
	ErrHalted               = errors.New(f("cpu halted"))
	ErrBusy                 = errors.New(f("cpu busy"))
	ErrConsoleMissing       = errors.New(f("console missing"))

	// Loader errors
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
)

// ErrOpcode is an opcode with no dispatch entry.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrUnknownOpcode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrAluOp is an ALU-class opcode that the ALU does not implement.
type ErrAluOp Opcode

func (ea ErrAluOp) Error() string {
	return f("unsupported alu operation 0x%02x", uint8(ea))
}

func (ea ErrAluOp) Is(err error) (ok bool) {
	if err == ErrUnsupportedOperation {
		return true
	}
	_, ok = err.(ErrAluOp)
	return
}

// ErrRange is an address or register index outside the machine.
type ErrRange struct {
	What  string
	Value int
}

func (er ErrRange) Error() string {
	return f("%v %d out of range", er.What, er.Value)
}

func (er ErrRange) Is(err error) bool {
	return err == ErrOutOfRange
}

// ErrInstruction locates a fault at the instruction that raised it.
type ErrInstruction struct {
	Pc     int
	Opcode Opcode
	Err    error
}

func (err *ErrInstruction) Error() string {
	return f("pc 0x%02x %v: %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseBinary string

func (err ErrParseBinary) Error() string {
	return f("'%v' is not an 8-bit binary literal", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a byte value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
