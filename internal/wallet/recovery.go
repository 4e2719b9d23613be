package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"ethdk/internal/domain"
)

// RecoveryHash binds trustee and the salted phrase to wallet, packed the way
// the gateway's recoverWallet rebuilds it:
// keccak256(abi.encodePacked(trustee, keccak256(phrase), wallet)).
func RecoveryHash(recoveryPhrase string, trustee, wallet common.Address) common.Hash {
	saltHash := ethcrypto.Keccak256([]byte(recoveryPhrase))
	return ethcrypto.Keccak256Hash(trustee.Bytes(), saltHash, wallet.Bytes())
}

// SetRecoveryHashBundle signs a call to the wallet's own setRecoveryHash so
// that trustee can later recover it with recoveryPhrase.
func (w *Wallet) SetRecoveryHashBundle(
	ctx context.Context,
	recoveryPhrase string,
	trustee common.Address,
) (domain.Bundle, error) {
	if recoveryPhrase == "" {
		return domain.Bundle{}, &domain.InvalidInputError{Field: "recovery phrase", Reason: "empty"}
	}
	rh := RecoveryHash(recoveryPhrase, trustee, w.address)
	data, err := walletABI.Pack("setRecoveryHash", [32]byte(rh))
	if err != nil {
		return domain.Bundle{}, err
	}

	nonce, err := w.Nonce(ctx)
	if err != nil {
		return domain.Bundle{}, errors.Wrap(err, "fetching nonce for recovery bundle")
	}
	return w.Sign(domain.Operation{
		Nonce: nonce.String(),
		Actions: []domain.Action{{
			EthValue:        "0",
			ContractAddress: w.address.Hex(),
			EncodedFunction: hexutil.Encode(data),
		}},
	})
}
