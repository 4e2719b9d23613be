package account_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ethdk/internal/aggregator"
	"ethdk/internal/domain"
	"ethdk/internal/services/account"
	"ethdk/internal/wallet"
)

var walletAddr = common.HexToAddress("0x00000000000000000000000000000000000000a1")

type mockWallet struct{ mock.Mock }

func (m *mockWallet) Address() common.Address { return m.Called().Get(0).(common.Address) }

func (m *mockWallet) PublicKey() domain.BLSPublicKey {
	return m.Called().Get(0).(domain.BLSPublicKey)
}

func (m *mockWallet) Nonce(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(*big.Int)
	return n, args.Error(1)
}

func (m *mockWallet) Sign(op domain.Operation) (domain.Bundle, error) {
	args := m.Called(op)
	return args.Get(0).(domain.Bundle), args.Error(1)
}

func (m *mockWallet) SetRecoveryHashBundle(
	ctx context.Context,
	phrase string,
	trustee common.Address,
) (domain.Bundle, error) {
	args := m.Called(ctx, phrase, trustee)
	return args.Get(0).(domain.Bundle), args.Error(1)
}

type mockConnector struct{ mock.Mock }

func (m *mockConnector) Connect(
	ctx context.Context,
	key domain.PrivateKey,
	network domain.Network,
) (domain.Wallet, error) {
	args := m.Called(ctx, key, network)
	w, _ := args.Get(0).(domain.Wallet)
	return w, args.Error(1)
}

// stubAggregator answers every POST /bundle with body and records what it
// received.
type stubAggregator struct {
	mu      sync.Mutex
	bundles []domain.Bundle
}

func (s *stubAggregator) start(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b domain.Bundle
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&b)) {
			s.mu.Lock()
			s.bundles = append(s.bundles, b)
			s.mu.Unlock()
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func signedBundle(op domain.Operation) domain.Bundle {
	return domain.Bundle{
		SenderPublicKeys: []domain.BLSPublicKey{{"0x1", "0x2", "0x3", "0x4"}},
		Operations:       []domain.Operation{op},
		Signature:        domain.BLSSignature{"0x5", "0x6"},
	}
}

type fixture struct {
	svc    *account.Service
	wallet *mockWallet
	agg    *stubAggregator
	net    domain.Network
}

func newFixture(t *testing.T, status int, body string) *fixture {
	t.Helper()
	agg := &stubAggregator{}
	net := domain.Localhost()
	net.AggregatorURL = agg.start(t, status, body)

	w := &mockWallet{}
	w.On("Address").Return(walletAddr).Maybe()

	conn := &mockConnector{}
	conn.On("Connect", mock.Anything, mock.Anything, net).Return(w, nil)

	svc := account.New(account.Deps{
		Network:    net,
		Connector:  conn,
		Aggregator: aggregator.New(net.AggregatorURL, nil),
	})
	return &fixture{svc: svc, wallet: w, agg: agg, net: net}
}

func (f *fixture) account(t *testing.T) *account.Account {
	t.Helper()
	a, err := f.svc.CreateAccount(context.Background(), "0x01")
	require.NoError(t, err)
	return a
}

func TestSendTransaction_Accepted(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0xfeed"}`)
	a := f.account(t)

	op := domain.Operation{Nonce: "2", Actions: []domain.Action{
		{EthValue: "0", ContractAddress: "0x00000000000000000000000000000000000000b1", EncodedFunction: "0x"},
		{EthValue: "5", ContractAddress: "0x00000000000000000000000000000000000000b2", EncodedFunction: "0xa9059cbb"},
	}}
	f.wallet.On("Nonce", mock.Anything).Return(big.NewInt(2), nil).Once()
	f.wallet.On("Sign", op).Return(signedBundle(op), nil).Once()

	res, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{
		{To: "0x00000000000000000000000000000000000000b1"},
		{To: "0x00000000000000000000000000000000000000b2", Value: "5", Data: "0xa9059cbb"},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", res.Hash)
	assert.Equal(t, f.net, res.Network)

	require.Len(t, f.agg.bundles, 1)
	assert.Equal(t, signedBundle(op), f.agg.bundles[0])
	f.wallet.AssertExpectations(t)
}

func TestSendTransaction_FillsDefaults(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	a := f.account(t)

	var signed domain.Operation
	f.wallet.On("Nonce", mock.Anything).Return(big.NewInt(0), nil)
	f.wallet.On("Sign", mock.Anything).Run(func(args mock.Arguments) {
		signed = args.Get(0).(domain.Operation)
	}).Return(domain.Bundle{}, nil)

	_, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{{To: walletAddr.Hex()}})
	require.NoError(t, err)

	require.Len(t, signed.Actions, 1)
	assert.Equal(t, "0", signed.Actions[0].EthValue)
	assert.Equal(t, "0x", signed.Actions[0].EncodedFunction)
	assert.Equal(t, walletAddr.Hex(), signed.Actions[0].ContractAddress)
	assert.Equal(t, "0", signed.Nonce)
}

func TestSendTransaction_RejectionCarriesPayload(t *testing.T) {
	body := `{"failures":[{"type":"nonce","description":"nonce too low"}]}`
	f := newFixture(t, http.StatusBadRequest, body)
	a := f.account(t)

	f.wallet.On("Nonce", mock.Anything).Return(big.NewInt(0), nil)
	f.wallet.On("Sign", mock.Anything).Return(domain.Bundle{}, nil)

	_, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{{To: walletAddr.Hex()}})
	require.Error(t, err)

	var rej *domain.AggregatorRejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, body, rej.Payload)
	assert.Contains(t, err.Error(), body)
	require.Len(t, rej.Failures, 1)
	assert.Equal(t, "nonce too low", rej.Failures[0].Description)
}

func TestSendTransaction_UntypedFailuresStillReject(t *testing.T) {
	body := `{"failures":["nonce too low"]}`
	f := newFixture(t, http.StatusBadRequest, body)
	a := f.account(t)

	f.wallet.On("Nonce", mock.Anything).Return(big.NewInt(0), nil)
	f.wallet.On("Sign", mock.Anything).Return(domain.Bundle{}, nil)

	_, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{{To: walletAddr.Hex()}})
	var rej *domain.AggregatorRejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, body, rej.Payload)
	assert.False(t, domain.IsConnectionError(err))
}

func TestSendTransaction_EmptyList(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	_, err := f.account(t).SendTransaction(context.Background(), nil)
	assert.True(t, domain.IsInvalidInput(err))
	assert.Empty(t, f.agg.bundles)
}

func TestSendTransaction_SignErrorStopsSubmission(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	a := f.account(t)

	f.wallet.On("Nonce", mock.Anything).Return(big.NewInt(0), nil)
	f.wallet.On("Sign", mock.Anything).Return(domain.Bundle{},
		&domain.InvalidInputError{Field: "contractAddress", Reason: "bad"})

	_, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{{To: "nope"}})
	assert.True(t, domain.IsInvalidInput(err))
	assert.Empty(t, f.agg.bundles)
}

func TestSendTransaction_NonceErrorPropagates(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	a := f.account(t)

	f.wallet.On("Nonce", mock.Anything).Return(nil, &domain.ConnectionError{Endpoint: "rpc", Err: errors.New("down")})

	_, err := a.SendTransaction(context.Background(), []domain.SendTransactionParams{{To: walletAddr.Hex()}})
	assert.True(t, domain.IsConnectionError(err))
	f.wallet.AssertNotCalled(t, "Sign", mock.Anything)
}

func TestSetTrustedAccount_SharesSubmitPath(t *testing.T) {
	body := `{"failures":[{"type":"x","description":"y"}]}`
	f := newFixture(t, http.StatusOK, body)
	a := f.account(t)

	trustee := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	recovery := signedBundle(domain.Operation{Nonce: "9"})
	f.wallet.On("SetRecoveryHashBundle", mock.Anything, "phrase", trustee).Return(recovery, nil).Once()

	_, err := a.SetTrustedAccount(context.Background(), "phrase", trustee.Hex())
	var rej *domain.AggregatorRejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, body, rej.Payload)

	require.Len(t, f.agg.bundles, 1)
	assert.Equal(t, recovery, f.agg.bundles[0])
}

func TestSetTrustedAccount_Accepted(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0xbeef"}`)
	a := f.account(t)
	f.wallet.On("SetRecoveryHashBundle", mock.Anything, "p", mock.Anything).Return(domain.Bundle{}, nil)

	res, err := a.SetTrustedAccount(context.Background(), "p", "0x00000000000000000000000000000000000000c1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionResult{Network: f.net, Hash: "0xbeef"}, res)
}

func TestSetTrustedAccount_BadAddress(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	_, err := f.account(t).SetTrustedAccount(context.Background(), "p", "0x123")
	assert.True(t, domain.IsInvalidInput(err))
	assert.Empty(t, f.agg.bundles)
}

func TestGetBalance_FormatsEther(t *testing.T) {
	rpc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_getBalance", req.Method)
		if !assert.Len(t, req.Params, 2) {
			return
		}
		assert.JSONEq(t, `"`+walletAddr.Hex()+`"`, string(checksummed(req.Params[0])))
		assert.JSONEq(t, `"latest"`, string(req.Params[1]))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0xde0b6b3a7640000"})
	}))
	defer rpc.Close()

	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	net := f.net
	net.RPCURL = rpc.URL
	conn := &mockConnector{}
	conn.On("Connect", mock.Anything, mock.Anything, net).Return(f.wallet, nil)
	svc := account.New(account.Deps{Network: net, Connector: conn})

	a, err := svc.CreateAccount(context.Background(), "0x01")
	require.NoError(t, err)

	bal, err := a.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0", bal)
}

func TestGetBalance_Unreachable(t *testing.T) {
	rpc := httptest.NewServer(http.NotFoundHandler())
	url := rpc.URL
	rpc.Close()

	f := newFixture(t, http.StatusOK, `{"hash":"0x1"}`)
	net := f.net
	net.RPCURL = url
	conn := &mockConnector{}
	conn.On("Connect", mock.Anything, mock.Anything, net).Return(f.wallet, nil)

	a, err := account.New(account.Deps{Network: net, Connector: conn}).CreateAccount(context.Background(), "0x01")
	require.NoError(t, err)

	_, err = a.GetBalance(context.Background())
	assert.True(t, domain.IsConnectionError(err))
}

func TestCreateAccount_GeneratesKeyWhenEmpty(t *testing.T) {
	net := domain.Localhost()
	w := &mockWallet{}
	w.On("Address").Return(walletAddr)

	var got domain.PrivateKey
	conn := &mockConnector{}
	conn.On("Connect", mock.Anything, mock.Anything, net).Run(func(args mock.Arguments) {
		got = args.Get(1).(domain.PrivateKey)
	}).Return(w, nil)

	a, err := account.New(account.Deps{Network: net, Connector: conn}).CreateAccount(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Equal(t, got, a.PrivateKey())
	assert.Equal(t, walletAddr, a.Address())
	assert.Equal(t, net, a.Network())
}

func TestCreateAccount_ConnectError(t *testing.T) {
	net := domain.Localhost()
	conn := &mockConnector{}
	conn.On("Connect", mock.Anything, mock.Anything, net).
		Return(nil, &domain.ConnectionError{Endpoint: net.RPCURL, Err: errors.New("refused")})

	_, err := account.New(account.Deps{Network: net, Connector: conn}).CreateAccount(context.Background(), "0x01")
	assert.True(t, domain.IsConnectionError(err))
}

func TestGeneratePrivateKey_Distinct(t *testing.T) {
	svc := account.New(account.Deps{Network: domain.Localhost(), Keys: wallet.KeyGenerator{}})
	seen := map[domain.PrivateKey]bool{}
	for i := 0; i < 16; i++ {
		k, err := svc.GeneratePrivateKey()
		require.NoError(t, err)
		assert.False(t, seen[k])
		seen[k] = true
	}
}

func checksummed(raw json.RawMessage) json.RawMessage {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return raw
	}
	out, _ := json.Marshal(common.HexToAddress(s).Hex())
	return out
}
