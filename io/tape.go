package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
)

// TAPE_RADIX is the numeric base of values written to a tape.
const TAPE_RADIX = 10

// Tape renders each value sent to it as a decimal line on Output.
type Tape struct {
	Output io.Writer

	Written int // Count of values written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TAPE_RADIX": strconv.Itoa(TAPE_RADIX),
	})
}

// Rewind clears the written counter; output already sent cannot be recalled.
func (tc *Tape) Rewind() {
	tc.Written = 0
}

// Receive yields nothing, as a tape is output only.
func (tc *Tape) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {}
}

// Send writes the decimal text of value followed by a newline.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintln(tc.Output, strconv.FormatUint(uint64(value), TAPE_RADIX))
	if err != nil {
		return
	}

	tc.Written++

	return
}
