package app

import (
	_ "embed"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"ethdk/internal/domain"
)

// Environment variables read by LoadConfig.
const (
	EnvNetworksFile  = "ETHDK_NETWORKS_FILE"
	EnvNetwork       = "ETHDK_NETWORK"
	EnvRPCURL        = "ETHDK_RPC_URL"
	EnvAggregatorURL = "ETHDK_AGGREGATOR_URL"
	EnvHTTPTimeout   = "ETHDK_HTTP_TIMEOUT"
	EnvPrivateKey    = "ETHDK_PRIVATE_KEY"
	EnvLogMode       = "LOG_MODE"
)

const (
	DefaultNetwork     = "localhost"
	DefaultHTTPTimeout = 30 * time.Second
)

//go:embed networks.yaml
var builtinNetworks []byte

// Config holds runtime wiring options for building the app.
type Config struct {
	Network     domain.Network
	PrivateKey  domain.PrivateKey // from ETHDK_PRIVATE_KEY; empty means generate
	HTTPTimeout time.Duration
	LogMode     string       // "prod" for JSON logs, anything else for console
	HTTP        *http.Client // optional; built from HTTPTimeout when nil
}

// Overrides are command-line values that win over the environment. Empty
// fields are ignored.
type Overrides struct {
	Network       string
	NetworksFile  string
	RPCURL        string
	AggregatorURL string
	PrivateKey    string
}

// LoadConfig resolves the configuration in this order: built-in defaults,
// .env in the working directory, process environment, then o.
func LoadConfig(o Overrides) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(err, "loading .env")
	}

	file := first(o.NetworksFile, os.Getenv(EnvNetworksFile))
	catalogue, err := loadNetworks(file)
	if err != nil {
		return Config{}, err
	}

	name := first(o.Network, os.Getenv(EnvNetwork), DefaultNetwork)
	network, ok := catalogue[name]
	if !ok {
		return Config{}, errors.Errorf("unknown network %q", name)
	}
	network.RPCURL = first(o.RPCURL, os.Getenv(EnvRPCURL), network.RPCURL)
	network.AggregatorURL = first(o.AggregatorURL, os.Getenv(EnvAggregatorURL), network.AggregatorURL)

	timeout := DefaultHTTPTimeout
	if v := strings.TrimSpace(os.Getenv(EnvHTTPTimeout)); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return Config{}, errors.Errorf("%s: invalid duration %q", EnvHTTPTimeout, v)
		}
	}

	return Config{
		Network:     network,
		PrivateKey:  domain.PrivateKey(first(o.PrivateKey, os.Getenv(EnvPrivateKey))),
		HTTPTimeout: timeout,
		LogMode:     os.Getenv(EnvLogMode),
	}, nil
}

type networkFile struct {
	Networks []struct {
		Name                string `yaml:"name"`
		ChainID             int64  `yaml:"chain_id"`
		RPCURL              string `yaml:"rpc_url"`
		AggregatorURL       string `yaml:"aggregator_url"`
		VerificationGateway string `yaml:"verification_gateway"`
		WalletInitCodeHash  string `yaml:"wallet_init_code_hash"`
	} `yaml:"networks"`
}

// loadNetworks reads a network catalogue from path, or the built-in one when
// path is empty.
func loadNetworks(path string) (map[string]domain.Network, error) {
	raw := builtinNetworks
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading networks file")
		}
		raw = b
	}

	var nf networkFile
	if err := yaml.Unmarshal(raw, &nf); err != nil {
		return nil, errors.Wrap(err, "parsing networks file")
	}

	out := make(map[string]domain.Network, len(nf.Networks))
	for _, n := range nf.Networks {
		if n.Name == "" {
			return nil, errors.New("network without a name")
		}
		if _, dup := out[n.Name]; dup {
			return nil, errors.Errorf("network %q defined twice", n.Name)
		}
		if !common.IsHexAddress(n.VerificationGateway) {
			return nil, errors.Errorf("network %q: bad verification_gateway %q", n.Name, n.VerificationGateway)
		}
		initHash := common.Hash{}
		if n.WalletInitCodeHash != "" {
			b, err := decodeHash(n.WalletInitCodeHash)
			if err != nil {
				return nil, errors.Wrapf(err, "network %q: wallet_init_code_hash", n.Name)
			}
			initHash = b
		}
		out[n.Name] = domain.Network{
			Name:                n.Name,
			ChainID:             n.ChainID,
			RPCURL:              n.RPCURL,
			AggregatorURL:       n.AggregatorURL,
			VerificationGateway: common.HexToAddress(n.VerificationGateway),
			WalletInitCodeHash:  initHash,
		}
	}
	return out, nil
}

func decodeHash(s string) (common.Hash, error) {
	var h common.Hash
	if err := h.UnmarshalText([]byte(s)); err != nil {
		return common.Hash{}, err
	}
	return h, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
