package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "ethdk/internal/domain/types"
)

// Wallet is a BLS wallet bound to one key and one verification gateway.
type Wallet interface {
	Address() common.Address
	PublicKey() domaintypes.BLSPublicKey

	// Nonce reads the wallet's current nonce from chain state.
	Nonce(ctx context.Context) (*big.Int, error)

	// Sign signs the operation and returns it as a single-operation bundle.
	Sign(operation domaintypes.Operation) (domaintypes.Bundle, error)

	// SetRecoveryHashBundle builds and signs a bundle that lets trustee
	// recover the wallet with recoveryPhrase.
	SetRecoveryHashBundle(
		ctx context.Context,
		recoveryPhrase string,
		trustee common.Address,
	) (domaintypes.Bundle, error)
}

// WalletConnector opens wallets against a network's verification gateway.
type WalletConnector interface {
	Connect(
		ctx context.Context,
		privateKey domaintypes.PrivateKey,
		network domaintypes.Network,
	) (Wallet, error)
}

// KeyGenerator produces fresh BLS secret keys.
type KeyGenerator interface {
	GeneratePrivateKey() (domaintypes.PrivateKey, error)
}
