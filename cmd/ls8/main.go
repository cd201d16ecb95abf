// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/emulator"
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool
	var capture bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&save, "s", false, "Write the program as .ls8 binary text, do not execute")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&capture, "q", false, "Capture console output, and write it on one line after HLT")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Capture = capture

	if len(compile) != 0 {
		// Assemble a new program.
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("usage: %v [-v] [-q] [-s] [-o output] (-c file.asm | file.ls8)", os.Args[0])
		}

		filename := flag.Arg(0)
		inf, err := os.Open(filename)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
		defer inf.Close()

		err = emu.LoadBinary(inf)
		if err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
	}

	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if save {
		_, err := emu.Program.WriteTo(emu.Tape.Output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Printf("\n%v", emu.Cpu.String())
		}
		log.Fatal(err)
	}

	if capture {
		values := emu.Captured()
		text := make([]string, len(values))
		for n, value := range values {
			text[n] = strconv.Itoa(int(value))
		}
		_, err = fmt.Fprintln(emu.Tape.Output, strings.Join(text, " "))
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}
}
