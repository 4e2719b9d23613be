package account

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"ethdk/internal/aggregator"
	"ethdk/internal/chain"
	"ethdk/internal/domain"
	"ethdk/internal/logger"
	"ethdk/internal/wallet"
)

// Deps are the collaborators a Service needs. Zero fields fall back to the
// real implementations for Network.
type Deps struct {
	Network    domain.Network
	Connector  domain.WalletConnector
	Keys       domain.KeyGenerator
	Aggregator domain.AggregatorClient
	Chain      domain.ChainDialer
	HTTP       *http.Client
	Log        *logger.Logger
}

// Service creates accounts on a single network.
type Service struct {
	network    domain.Network
	connector  domain.WalletConnector
	keys       domain.KeyGenerator
	aggregator domain.AggregatorClient
	chain      domain.ChainDialer
	log        *logger.Logger
}

// New constructs a Service for d.Network.
func New(d Deps) *Service {
	s := &Service{
		network:    d.Network,
		connector:  d.Connector,
		keys:       d.Keys,
		aggregator: d.Aggregator,
		chain:      d.Chain,
		log:        d.Log,
	}
	if s.connector == nil {
		s.connector = wallet.NewConnector(wallet.HTTPDialer(d.HTTP))
	}
	if s.keys == nil {
		s.keys = wallet.KeyGenerator{}
	}
	if s.aggregator == nil {
		s.aggregator = aggregator.New(d.Network.AggregatorURL, d.HTTP)
	}
	if s.chain == nil {
		s.chain = chain.Dialer{HTTP: d.HTTP}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Network returns the network accounts are created on.
func (s *Service) Network() domain.Network { return s.network }

// GeneratePrivateKey returns a fresh random BLS secret key.
func (s *Service) GeneratePrivateKey() (domain.PrivateKey, error) {
	k, err := s.keys.GeneratePrivateKey()
	if err != nil {
		return "", errors.Wrap(err, "generating private key")
	}
	return k, nil
}

// CreateAccount connects a wallet for privateKey, generating a key when it
// is empty.
func (s *Service) CreateAccount(ctx context.Context, privateKey domain.PrivateKey) (*Account, error) {
	if privateKey == "" {
		k, err := s.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		privateKey = k
	}

	w, err := s.connector.Connect(ctx, privateKey, s.network)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting wallet on %s", s.network.Name)
	}

	a := &Account{
		privateKey: privateKey,
		wallet:     w,
		network:    s.network,
		aggregator: s.aggregator,
		chain:      s.chain,
		log:        s.log.With("network", s.network.Name, "address", w.Address().Hex()),
	}
	a.log.Debug("account ready")
	return a, nil
}

// Account is a wallet bound to one key and one network. It is immutable
// after construction.
type Account struct {
	privateKey domain.PrivateKey
	wallet     domain.Wallet
	network    domain.Network
	aggregator domain.AggregatorClient
	chain      domain.ChainDialer
	log        *logger.Logger
}

var _ domain.Account = (*Account)(nil)

// Address returns the wallet contract address.
func (a *Account) Address() common.Address { return a.wallet.Address() }

// Network returns the account's network.
func (a *Account) Network() domain.Network { return a.network }

// PrivateKey returns the key the account was created with.
func (a *Account) PrivateKey() domain.PrivateKey { return a.privateKey }

// PublicKey returns the wallet's BLS public key.
func (a *Account) PublicKey() domain.BLSPublicKey { return a.wallet.PublicKey() }

// SendTransaction signs params as one operation and submits it.
func (a *Account) SendTransaction(
	ctx context.Context,
	params []domain.SendTransactionParams,
) (domain.TransactionResult, error) {
	if len(params) == 0 {
		return domain.TransactionResult{}, &domain.InvalidInputError{
			Field:  "transactions",
			Reason: "at least one transaction required",
		}
	}
	actions := make([]domain.Action, len(params))
	for i, p := range params {
		actions[i] = toAction(p)
	}

	nonce, err := a.wallet.Nonce(ctx)
	if err != nil {
		return domain.TransactionResult{}, errors.Wrap(err, "fetching nonce")
	}
	a.log.Debug("signing operation", "nonce", nonce.String(), "actions", len(actions))

	bundle, err := a.wallet.Sign(domain.Operation{Nonce: nonce.String(), Actions: actions})
	if err != nil {
		return domain.TransactionResult{}, errors.Wrap(err, "signing operation")
	}
	return a.submit(ctx, bundle)
}

// SetTrustedAccount registers trustedAccount as able to recover the wallet
// with recoveryPhrase.
func (a *Account) SetTrustedAccount(
	ctx context.Context,
	recoveryPhrase string,
	trustedAccount string,
) (domain.TransactionResult, error) {
	if !common.IsHexAddress(trustedAccount) {
		return domain.TransactionResult{}, &domain.InvalidInputError{
			Field:  "trusted account",
			Reason: "not a hex address: " + trustedAccount,
		}
	}
	a.log.Debug("setting recovery hash", "trustee", trustedAccount)

	bundle, err := a.wallet.SetRecoveryHashBundle(ctx, recoveryPhrase, common.HexToAddress(trustedAccount))
	if err != nil {
		return domain.TransactionResult{}, errors.Wrap(err, "building recovery bundle")
	}
	return a.submit(ctx, bundle)
}

// GetBalance returns the native balance at the latest block in ether.
func (a *Account) GetBalance(ctx context.Context) (string, error) {
	rd, err := a.chain.DialChain(ctx, a.network.RPCURL)
	if err != nil {
		return "", errors.Wrap(err, "dialing rpc")
	}
	defer rd.Close()

	wei, err := rd.BalanceAt(ctx, a.Address(), nil)
	if err != nil {
		return "", errors.Wrap(err, "reading balance")
	}
	return chain.FormatEther(wei), nil
}

func (a *Account) submit(ctx context.Context, bundle domain.Bundle) (domain.TransactionResult, error) {
	resp, err := a.aggregator.AddBundle(ctx, bundle)
	if err != nil {
		return domain.TransactionResult{}, errors.Wrap(err, "submitting bundle")
	}

	switch r := resp.(type) {
	case domain.BundleAccepted:
		a.log.Debug("bundle accepted", "hash", r.Hash)
		return domain.TransactionResult{Network: a.network, Hash: r.Hash}, nil
	case domain.BundleRejected:
		a.log.Warn("bundle rejected", "failures", len(r.Failures))
		return domain.TransactionResult{}, &domain.AggregatorRejection{
			Failures: r.Failures,
			Payload:  string(r.Raw),
		}
	default:
		return domain.TransactionResult{}, errors.Errorf("unexpected aggregator response %T", resp)
	}
}

func toAction(p domain.SendTransactionParams) domain.Action {
	a := domain.Action{
		EthValue:        p.Value,
		ContractAddress: p.To,
		EncodedFunction: p.Data,
	}
	if a.EthValue == "" {
		a.EthValue = "0"
	}
	if a.EncodedFunction == "" {
		a.EncodedFunction = "0x"
	}
	return a
}
