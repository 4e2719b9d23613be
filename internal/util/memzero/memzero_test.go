package memzero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ethdk/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	memzero.Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	memzero.Zero(nil)
}

func TestWords(t *testing.T) {
	w := [4]uint64{1, 2, 3, 4}
	memzero.Words(w[:])
	assert.Equal(t, [4]uint64{}, w)
}
