package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"SP_INIT": "0xf4"}
	b := map[string]string{"MEMORY_SIZE": "256", "REGISTERS": "8"}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{
		"SP_INIT":     "0xf4",
		"MEMORY_SIZE": "256",
		"REGISTERS":   "8",
	}, all)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2}

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Concat_Empty(t *testing.T) {
	assert := assert.New(t)

	all := maps.Collect(IterSeq2Concat[string, int]())
	assert.Empty(all)
}
