package domain

import (
	interfaces "ethdk/internal/domain/interfaces"
	types "ethdk/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Network               = types.Network
	PrivateKey            = types.PrivateKey
	SendTransactionParams = types.SendTransactionParams
	Action                = types.Action
	Operation             = types.Operation
	BLSPublicKey          = types.BLSPublicKey
	BLSSignature          = types.BLSSignature
	Bundle                = types.Bundle
	TransactionResult     = types.TransactionResult
	TransactionFailure    = types.TransactionFailure
	AddBundleResponse     = types.AddBundleResponse
	BundleAccepted        = types.BundleAccepted
	BundleRejected        = types.BundleRejected
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Wallet           = interfaces.Wallet
	WalletConnector  = interfaces.WalletConnector
	KeyGenerator     = interfaces.KeyGenerator
	AggregatorClient = interfaces.AggregatorClient
	ChainReader      = interfaces.ChainReader
	ChainDialer      = interfaces.ChainDialer
	Account          = interfaces.Account
)

// Localhost returns the built-in development network.
func Localhost() Network { return types.Localhost() }
