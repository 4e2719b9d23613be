package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

// FormatEther renders a wei amount in ether with at least one fractional
// digit and no trailing zeros beyond it: 1e18 -> "1.0", 15e17 -> "1.5".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	abs := new(big.Int).Abs(wei)
	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))

	fs := frac.String()
	fs = strings.Repeat("0", etherDecimals-len(fs)) + fs
	fs = strings.TrimRight(fs, "0")
	if fs == "" {
		fs = "0"
	}

	out := whole.String() + "." + fs
	if wei.Sign() < 0 {
		out = "-" + out
	}
	return out
}
