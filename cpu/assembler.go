// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("%#x", SP_INIT),
}

// Assembler is a single pass assembler for LS-8 mnemonic source.
//
// Each line holds an optional label ("name:"), then either a directive
// (".equ NAME VALUE", ".byte V, ..."), or an instruction with its operands
// separated by commas or spaces. A ';' starts a comment. "$(expr)" is
// evaluated at assembly time as a Starlark expression over the equates and
// labels defined so far.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": SP,
	"sp": SP,
}

// immOperand is the index of the immediate operand of an opcode.
// All other operands are registers.
var immOperand = map[Opcode]int{
	LDI: 1,
}

// valueOf returns the byte value of a numeric word.
// Negative values down to -128 are stored in two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil || v64 > 0xff || v64 < -0x80 {
		err = ErrParseNumber(word)
		return
	}

	value = uint8(v64)
	return
}

// isIdentifier returns true if word can name a label or equate.
func isIdentifier(word string) bool {
	if len(word) == 0 {
		return false
	}
	for n, r := range word {
		if r == '_' || unicode.IsLetter(r) || (n > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a line into words, defining any labels and equates.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !isIdentifier(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddr()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !isIdentifier(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n+1] = equate
		}
	}

	return
}

// currentAddr gets the address of the next generated byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Statement) == 0 {
		return 0
	}

	last := asm.Statement[len(asm.Statement)-1]

	return last.Addr + len(last.Codes)
}

// immediate resolves an immediate operand. An unknown identifier is
// returned as a label to link after the pass.
func (asm *Assembler) immediate(word string) (value uint8, link string, err error) {
	addr, ok := asm.Label[word]
	if ok {
		value = uint8(addr)
		return
	}

	value, err = asm.valueOf(word)
	if err != nil && isIdentifier(word) {
		err = nil
		link = word
	}

	return
}

// register resolves a register operand.
func (asm *Assembler) register(word string) (index uint8, err error) {
	index, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrRegisterInvalid, word)
	}
	return
}

// parseWords generates the statement for an expanded line.
func (asm *Assembler) parseWords(words []string, lineno int, source string) (err error) {
	if len(words) == 0 {
		return
	}

	st := Statement{
		LineNo: lineno,
		Addr:   asm.currentAddr(),
		Source: source,
	}

	// addImmediate appends an immediate; a label link is only possible on
	// the final byte of a statement.
	addImmediate := func(word string, last bool) (err error) {
		value, link, err := asm.immediate(word)
		if err != nil {
			return
		}
		if len(link) != 0 {
			if !last {
				err = ErrLabelMissing(link)
				return
			}
			st.LinkLabel = link
		}
		st.Codes = append(st.Codes, value)
		return
	}

	if words[0] == ".byte" {
		if len(words) == 1 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, word := range words[1:] {
			err = addImmediate(word, n == len(words)-2)
			if err != nil {
				return
			}
		}
	} else {
		op, ok := OpcodeByName(words[0])
		if !ok {
			err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, words[0])
			return
		}

		args := words[1:]
		switch {
		case len(args) > op.Operands():
			err = ErrOpcodeExtraArgs
			return
		case len(args) < op.Operands():
			err = ErrOpcodeValueMissing
			return
		}

		st.Codes = append(st.Codes, uint8(op))

		imm, has_imm := immOperand[op]
		for n, arg := range args {
			if has_imm && n == imm {
				err = addImmediate(arg, n == len(args)-1)
				if err != nil {
					return
				}
				continue
			}
			var index uint8
			index, err = asm.register(arg)
			if err != nil {
				return
			}
			st.Codes = append(st.Codes, index)
		}
	}

	if st.Addr+len(st.Codes) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	if asm.Verbose {
		log.Printf("asm: %02X: % 02X", st.Addr, st.Codes)
	}

	asm.Statement = append(asm.Statement, st)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Statement = asm.Statement[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[st.LinkLabel]
		if !ok {
			lineno = st.LineNo
			line = st.Source
			err = ErrLabelMissing(st.LinkLabel)
			return
		}
		st.Codes[len(st.Codes)-1] = uint8(addr)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}
