package io

import (
	"iter"
	"maps"
	"strconv"
)

// TEMPORARY_CAPACITY is the default capacity of a Temporary channel.
const TEMPORARY_CAPACITY = 256

// Temporary implements a circular buffer of printed values.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in values. Zero selects TEMPORARY_CAPACITY.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []uint8
}

var _ Channel = (*Temporary)(nil)

// Defines returns an iter of defines for the channel.
func (temp *Temporary) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TEMPORARY_CAPACITY": strconv.Itoa(temp.capacity()),
	})
}

func (temp *Temporary) capacity() int {
	if temp.Capacity <= 0 {
		return TEMPORARY_CAPACITY
	}
	return temp.Capacity
}

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]uint8, temp.capacity())
}

// Receive returns an iterator that yields values from the buffer until empty.
// The buffer wraps around at the capacity boundary.
func (temp *Temporary) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for temp.Size > 0 {
			value := temp.Data[temp.ReadIndex]
			temp.ReadIndex++
			if temp.ReadIndex == len(temp.Data) {
				temp.ReadIndex = 0
			}
			temp.Size--
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a value to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value uint8) (err error) {
	if len(temp.Data) != temp.capacity() {
		temp.Rewind()
	}

	if temp.Size >= len(temp.Data) {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == len(temp.Data) {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
