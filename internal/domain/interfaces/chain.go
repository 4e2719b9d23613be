package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ChainReader is the read-only slice of a JSON-RPC client used by accounts.
type ChainReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// ChainDialer opens a fresh ChainReader for an RPC endpoint.
type ChainDialer interface {
	DialChain(ctx context.Context, rpcURL string) (ChainReader, error)
}
