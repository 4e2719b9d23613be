package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethdk/internal/app"
	"ethdk/internal/domain"
)

const word = "0x00000000000000000000000000000000000000000000000000000000000000a1"

var walletHex = common.HexToAddress("0xa1").Hex()

// chainStub answers as a node where every eth_call returns word, so the
// gateway resolves the wallet to 0x...a1 and its nonce is 0xa1.
func chainStub(t *testing.T) string {
	t.Helper()
	results := map[string]string{
		"eth_chainId":    "0x7a69",
		"eth_getCode":    "0x6001",
		"eth_call":       word,
		"eth_getBalance": "0x1bc16d674ec80000",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": results[req.Method]})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func aggregatorStub(t *testing.T, got *[]domain.Bundle) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b domain.Bundle
		_ = json.NewDecoder(r.Body).Decode(&b)
		*got = append(*got, b)
		_, _ = w.Write([]byte(`{"hash":"0xfeed"}`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{
		app.EnvNetworksFile, app.EnvNetwork, app.EnvRPCURL, app.EnvAggregatorURL,
		app.EnvHTTPTimeout, app.EnvPrivateKey, app.EnvLogMode,
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestKeygen(t *testing.T) {
	isolate(t)
	out, err := run(t, "keygen")
	require.NoError(t, err)
	key := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(key, "0x"))
	assert.Len(t, key, 66)
}

func TestAddressRequiresKey(t *testing.T) {
	isolate(t)
	_, err := run(t, "address")
	assert.ErrorContains(t, err, "private key required")
}

func TestUnknownNetwork(t *testing.T) {
	isolate(t)
	_, err := run(t, "keygen", "--network", "nowhere")
	assert.ErrorContains(t, err, "unknown network")
}

func TestAccountCommands(t *testing.T) {
	isolate(t)
	rpc := chainStub(t)
	var bundles []domain.Bundle
	agg := aggregatorStub(t, &bundles)

	key, err := run(t, "keygen")
	require.NoError(t, err)
	base := []string{"--rpc", rpc, "--aggregator", agg, "--key", strings.TrimSpace(key)}

	out, err := run(t, append([]string{"address"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, walletHex, strings.TrimSpace(out))

	out, err = run(t, append([]string{"balance"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "2.0 ETH", strings.TrimSpace(out))

	out, err = run(t, append([]string{"send", "0x00000000000000000000000000000000000000b1", "--value", "7"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "0xfeed")
	require.Len(t, bundles, 1)
	op := bundles[0].Operations[0]
	assert.Equal(t, "161", op.Nonce)
	assert.Equal(t, "7", op.Actions[0].EthValue)
	assert.Equal(t, "0x", op.Actions[0].EncodedFunction)

	out, err = run(t, append([]string{"trustee", "0x00000000000000000000000000000000000000c1", "--phrase", "p"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "0xfeed")
	require.Len(t, bundles, 2)
	assert.Equal(t, walletHex, bundles[1].Operations[0].Actions[0].ContractAddress)
}

func TestCreatePrintsGeneratedKey(t *testing.T) {
	isolate(t)
	rpc := chainStub(t)

	out, err := run(t, "create", "--rpc", rpc)
	require.NoError(t, err)
	assert.Contains(t, out, "Private key: 0x")
	assert.Contains(t, out, "Address:     "+walletHex)
}

func TestSendParams(t *testing.T) {
	_, err := sendParams(nil, "", "", "")
	assert.Error(t, err)

	txs, err := sendParams([]string{"0xb1"}, "1", "0xab", "")
	require.NoError(t, err)
	assert.Equal(t, []domain.SendTransactionParams{{To: "0xb1", Value: "1", Data: "0xab"}}, txs)

	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"to":"0x01"},{"to":"0x02","value":"3"}]`), 0o600))
	txs, err = sendParams(nil, "", "", path)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "3", txs[1].Value)

	_, err = sendParams([]string{"0x01"}, "", "", path)
	assert.Error(t, err)
}
