// Package cpu implements the LS-8 microprocessor, its program loader, and
// its assembler.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general-purpose
// registers (r0-r7, with r7 reserved as the stack pointer), an ALU, a
// condition flags register, and a program counter. Execution is a
// fetch-decode-execute loop over the byte at the program counter, ending on
// HLT or on the first fault.
//
// The loader reads the LS-8 binary text format (one base-2 byte per line),
// and the assembler translates mnemonic source into the same Program form.
package cpu
