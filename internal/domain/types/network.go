package types

import "github.com/ethereum/go-ethereum/common"

// Network describes one BLS-wallet deployment on an Ethereum-compatible chain.
type Network struct {
	Name                string         `json:"name" yaml:"name"`
	ChainID             int64          `json:"chainId" yaml:"chain_id"`
	RPCURL              string         `json:"rpcUrl" yaml:"rpc_url"`
	AggregatorURL       string         `json:"aggregatorUrl" yaml:"aggregator_url"`
	VerificationGateway common.Address `json:"verificationGateway" yaml:"verification_gateway"`

	// WalletInitCodeHash is the keccak256 of the wallet proxy creation code,
	// used to predict addresses of wallets that are not deployed yet.
	WalletInitCodeHash common.Hash `json:"walletInitCodeHash" yaml:"wallet_init_code_hash"`
}

// Localhost is the development network: a hardhat node on :8545 and an
// aggregator on :3000.
func Localhost() Network {
	return Network{
		Name:                "localhost",
		ChainID:             31337,
		RPCURL:              "http://localhost:8545",
		AggregatorURL:       "http://localhost:3000",
		VerificationGateway: common.HexToAddress("0x689A095B4507Bfa302eef8551F90fB322B3451c6"),
	}
}
