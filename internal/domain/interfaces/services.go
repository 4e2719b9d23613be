package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "ethdk/internal/domain/types"
)

// Account is a BLS-wallet-backed account on one network.
type Account interface {
	Address() common.Address
	Network() domaintypes.Network
	SendTransaction(
		ctx context.Context,
		params []domaintypes.SendTransactionParams,
	) (domaintypes.TransactionResult, error)
	SetTrustedAccount(
		ctx context.Context,
		recoveryPhrase string,
		trustedAccount string,
	) (domaintypes.TransactionResult, error)
	GetBalance(ctx context.Context) (string, error)
}
