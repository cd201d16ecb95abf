// Package io provides the output devices for the LS-8 emulator.
// PRN sends each printed register value to a Channel: a Tape renders
// values as decimal text lines on an io.Writer, and a Temporary keeps them
// in a bounded FIFO for later inspection.
package io

import (
	"iter"
)

// Channel defines the interface for an LS-8 output device.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single value to the channel.
	Send(value uint8) error
	// Receive returns an iterator that yields values held by the channel.
	Receive() iter.Seq[uint8]
}
