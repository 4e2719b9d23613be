package chain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"ethdk/internal/chain"
)

func TestFormatEther(t *testing.T) {
	cases := []struct {
		wei  string
		want string
	}{
		{"0", "0.0"},
		{"1", "0.000000000000000001"},
		{"1000000000000000000", "1.0"},
		{"1500000000000000000", "1.5"},
		{"123456789000000000000", "123.456789"},
		{"-2000000000000000000", "-2.0"},
		{"-1", "-0.000000000000000001"},
	}
	for _, c := range cases {
		wei, ok := new(big.Int).SetString(c.wei, 10)
		if !ok {
			t.Fatalf("bad fixture %q", c.wei)
		}
		assert.Equal(t, c.want, chain.FormatEther(wei), "wei=%s", c.wei)
	}
}

func TestFormatEther_Nil(t *testing.T) {
	assert.Equal(t, "0.0", chain.FormatEther(nil))
}
