package io

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporary_SendReceive(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 4}
	temp.Rewind()

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.NoError(temp.Send(3))
	assert.Equal(3, temp.Size)

	values := slices.Collect(temp.Receive())
	assert.Equal([]uint8{1, 2, 3}, values)
	assert.Equal(0, temp.Size)
}

func TestTemporary_Full(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	temp.Rewind()

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.ErrorIs(temp.Send(3), ErrChannelFull)
	assert.Equal(2, temp.Size)
}

func TestTemporary_Wrap(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}
	temp.Rewind()

	for _, v := range []uint8{10, 20, 30} {
		assert.NoError(temp.Send(v))
	}

	// Drain two, then write past the end of the buffer.
	for range temp.Receive() {
		if temp.Size == 1 {
			break
		}
	}
	assert.NoError(temp.Send(40))
	assert.NoError(temp.Send(50))

	assert.Equal([]uint8{30, 40, 50}, slices.Collect(temp.Receive()))
}

func TestTemporary_DefaultCapacity(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	assert.NoError(temp.Send(9))
	assert.Len(temp.Data, TEMPORARY_CAPACITY)
	assert.Equal("256", maps.Collect(temp.Defines())["TEMPORARY_CAPACITY"])
}

func TestTemporary_Rewind(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 4}
	temp.Send(1)
	temp.Send(2)

	temp.Rewind()
	assert.Equal(0, temp.Size)
	assert.Empty(slices.Collect(temp.Receive()))
}
