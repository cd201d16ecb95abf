package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Loader reads programs in the LS-8 binary text format.
//
// Each line holds at most one base-2 byte literal, optionally followed by a
// '#' comment. Blank and comment-only lines are skipped; bytes are placed
// sequentially from address 0.
type Loader struct {
	Verbose bool // If set, logs each loaded byte.
}

// Parse reads a program from input.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			prog = nil
		}
	}()

	prog = &Program{}
	addr := 0

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		literal, comment, _ := strings.Cut(text, "#")
		literal = strings.TrimSpace(literal)
		if len(literal) == 0 {
			continue
		}

		if len(literal) > 8 {
			err = ErrParseBinary(literal)
			return
		}

		var value uint64
		value, err = strconv.ParseUint(literal, 2, 8)
		if err != nil {
			err = ErrParseBinary(literal)
			return
		}

		if addr >= MEMORY_SIZE {
			err = ErrProgramTooLarge
			return
		}

		if ld.Verbose {
			log.Printf("loader: %02X: %08b\n", addr, value)
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo: lineno,
			Addr:   addr,
			Source: strings.TrimSpace(comment),
			Codes:  []uint8{uint8(value)},
		})
		addr++
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return
}
