package cpu

import (
	"fmt"
	"io"
	"iter"
)

// Statement is one line of a program with the bytes it generated.
type Statement struct {
	LineNo    int     // Source line number.
	Addr      int     // Address of the first generated byte.
	Source    string  // Source text, or the comment of a binary line.
	Codes     []uint8 // Generated bytes.
	LinkLabel string  // Label to link into the last byte, if any.
}

// Program is a list of statements laid out from address 0.
type Program struct {
	Statements []Statement
}

// Debug locates the statement and byte index for an address.
type Debug struct {
	*Statement
	Index int
}

// Debug returns the statement that generated addr, if any.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Codes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// Len returns the size of the program image in bytes.
func (prog *Program) Len() (size int) {
	for _, st := range prog.Statements {
		end := st.Addr + len(st.Codes)
		if end > size {
			size = end
		}
	}
	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Len())
	for addr, code := range prog.Codes() {
		bins[addr] = code
	}

	return
}

// Codes iterates over every generated byte and its address.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, code uint8) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(st.Addr+n, code) {
					return
				}
			}
		}
	}
}

// WriteTo writes the program in the LS-8 binary text format, one byte per
// line, with each statement's source as a comment on its first byte.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	emit := func(format string, args ...any) {
		if err != nil {
			return
		}
		var c int
		c, err = fmt.Fprintf(w, format, args...)
		n += int64(c)
	}

	for _, st := range prog.Statements {
		for index, code := range st.Codes {
			if index == 0 && len(st.Source) != 0 {
				emit("%08b # %v\n", code, st.Source)
			} else {
				emit("%08b\n", code)
			}
		}
	}

	return
}
