package wallet

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"ethdk/internal/chain"
	"ethdk/internal/crypto"
	"ethdk/internal/domain"
)

// Backend is the chain access a wallet needs.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	Close()
}

// DialFunc opens a Backend for an RPC endpoint.
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// Connector opens wallets. The zero value dials with chain.Dial.
type Connector struct {
	Dial DialFunc
}

// NewConnector returns a Connector using dial, or chain.Dial when nil.
func NewConnector(dial DialFunc) *Connector {
	return &Connector{Dial: dial}
}

// HTTPDialer returns a DialFunc that dials with httpClient.
func HTTPDialer(httpClient *http.Client) DialFunc {
	return func(ctx context.Context, rpcURL string) (Backend, error) {
		c, err := chain.DialHTTP(ctx, rpcURL, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Wallet is a connected BLS wallet.
type Wallet struct {
	key     *crypto.SecretKey
	pub     *crypto.PublicKey
	address common.Address
	chainID *big.Int
	network domain.Network
	backend Backend
}

// Connect parses privateKey, checks that the RPC endpoint serves the
// network's chain and gateway, and resolves the wallet address.
//
// Steps:
//  1. Parse the secret key and derive the public key and its hash.
//  2. Dial the RPC endpoint and compare its chain id with the network's.
//  3. Require contract code at the verification gateway.
//  4. Ask the gateway for the wallet registered under the key hash; fall
//     back to the CREATE2 address for wallets not yet deployed.
func (c *Connector) Connect(
	ctx context.Context,
	privateKey domain.PrivateKey,
	network domain.Network,
) (domain.Wallet, error) {
	key, err := crypto.SecretKeyFromHex(privateKey.Hex())
	if err != nil {
		return nil, &domain.InvalidInputError{Field: "private key", Reason: err.Error()}
	}
	pub := key.PublicKey()

	backend, err := c.dial(ctx, network.RPCURL)
	if err != nil {
		key.Wipe()
		return nil, err
	}
	connected := false
	defer func() {
		if !connected {
			backend.Close()
			key.Wipe()
		}
	}()

	id, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading chain id")
	}
	want := big.NewInt(network.ChainID)
	if id.Cmp(want) != 0 {
		return nil, &domain.ConnectionError{
			Endpoint: network.RPCURL,
			Err:      fmt.Errorf("chain id %s, network %q expects %s", id, network.Name, want),
		}
	}

	code, err := backend.CodeAt(ctx, network.VerificationGateway, nil)
	if err != nil {
		return nil, errors.Wrap(err, "reading verification gateway code")
	}
	if len(code) == 0 {
		return nil, &domain.ConnectionError{
			Endpoint: network.RPCURL,
			Err:      fmt.Errorf("no contract at verification gateway %s", network.VerificationGateway.Hex()),
		}
	}

	pkHash := pub.Hash()
	addr, err := walletFromHash(ctx, backend, network.VerificationGateway, pkHash)
	if err != nil {
		return nil, err
	}
	if addr == (common.Address{}) {
		addr = ExpectedAddress(network.VerificationGateway, pkHash, network.WalletInitCodeHash)
	}

	connected = true
	return &Wallet{
		key:     key,
		pub:     pub,
		address: addr,
		chainID: want,
		network: network,
		backend: backend,
	}, nil
}

func (c *Connector) dial(ctx context.Context, rpcURL string) (Backend, error) {
	if c.Dial != nil {
		return c.Dial(ctx, rpcURL)
	}
	cl, err := chain.Dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

// ExpectedAddress is the CREATE2 address the gateway deploys the wallet for
// pkHash at.
func ExpectedAddress(gateway common.Address, pkHash, initCodeHash common.Hash) common.Address {
	return ethcrypto.CreateAddress2(gateway, pkHash, initCodeHash.Bytes())
}

func walletFromHash(
	ctx context.Context,
	backend Backend,
	gateway common.Address,
	pkHash common.Hash,
) (common.Address, error) {
	data, err := gatewayABI.Pack("walletFromHash", [32]byte(pkHash))
	if err != nil {
		return common.Address{}, err
	}
	out, err := backend.CallContract(ctx, ethereum.CallMsg{To: &gateway, Data: data}, nil)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "calling walletFromHash")
	}
	res, err := gatewayABI.Unpack("walletFromHash", out)
	if err != nil || len(res) != 1 {
		return common.Address{}, &domain.ConnectionError{
			Endpoint: gateway.Hex(),
			Err:      fmt.Errorf("unexpected walletFromHash result: %v", err),
		}
	}
	addr, ok := res[0].(common.Address)
	if !ok {
		return common.Address{}, &domain.ConnectionError{
			Endpoint: gateway.Hex(),
			Err:      fmt.Errorf("walletFromHash returned %T", res[0]),
		}
	}
	return addr, nil
}

// Address returns the wallet contract address.
func (w *Wallet) Address() common.Address { return w.address }

// PublicKey returns the BLS public key in wire form.
func (w *Wallet) PublicKey() domain.BLSPublicKey { return w.pub.Hex() }

// Fingerprint returns a short fingerprint of the public key.
func (w *Wallet) Fingerprint() string { return w.pub.Fingerprint() }

// Nonce returns 0 for a wallet that is not deployed, else its nonce().
func (w *Wallet) Nonce(ctx context.Context) (*big.Int, error) {
	code, err := w.backend.CodeAt(ctx, w.address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "reading wallet code")
	}
	if len(code) == 0 {
		return new(big.Int), nil
	}

	data, err := walletABI.Pack("nonce")
	if err != nil {
		return nil, err
	}
	out, err := w.backend.CallContract(ctx, ethereum.CallMsg{To: &w.address, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "calling nonce")
	}
	res, err := walletABI.Unpack("nonce", out)
	if err != nil || len(res) != 1 {
		return nil, &domain.ConnectionError{
			Endpoint: w.network.RPCURL,
			Err:      fmt.Errorf("unexpected nonce result: %v", err),
		}
	}
	n, ok := res[0].(*big.Int)
	if !ok {
		return nil, &domain.ConnectionError{
			Endpoint: w.network.RPCURL,
			Err:      fmt.Errorf("nonce returned %T", res[0]),
		}
	}
	return n, nil
}

// Sign signs op and wraps it in a single-operation bundle.
func (w *Wallet) Sign(op domain.Operation) (domain.Bundle, error) {
	if len(op.Actions) == 0 {
		return domain.Bundle{}, &domain.InvalidInputError{Field: "actions", Reason: "at least one action required"}
	}
	msg, err := EncodeMessage(w.chainID, op)
	if err != nil {
		return domain.Bundle{}, err
	}
	sig, err := w.key.Sign(msg)
	if err != nil {
		return domain.Bundle{}, errors.Wrap(err, "signing operation")
	}
	return domain.Bundle{
		SenderPublicKeys: []domain.BLSPublicKey{w.pub.Hex()},
		Operations:       []domain.Operation{op},
		Signature:        sig.Hex(),
	}, nil
}

// Compile-time assertions.
var (
	_ domain.Wallet          = (*Wallet)(nil)
	_ domain.WalletConnector = (*Connector)(nil)
)
