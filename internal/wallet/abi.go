package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const gatewayABIJSON = `[
	{"type":"function","name":"walletFromHash","stateMutability":"view",
	 "inputs":[{"name":"hash","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]}
]`

const walletABIJSON = `[
	{"type":"function","name":"nonce","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"setRecoveryHash","stateMutability":"nonpayable",
	 "inputs":[{"name":"hash","type":"bytes32"}],
	 "outputs":[]}
]`

var (
	gatewayABI = mustParseABI(gatewayABIJSON)
	walletABI  = mustParseABI(walletABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}
