package app

import (
	"net/http"

	"github.com/pkg/errors"

	"ethdk/internal/aggregator"
	"ethdk/internal/chain"
	"ethdk/internal/domain"
	"ethdk/internal/logger"
	accountsvc "ethdk/internal/services/account"
	"ethdk/internal/wallet"
)

// Wire bundles the logger, clients and services for the CLI.
type Wire struct {
	Config     Config
	Log        *logger.Logger
	Aggregator domain.AggregatorClient
	Accounts   *accountsvc.Service
	HTTP       *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return newWire(cfg, log), nil
}

func newWire(cfg Config, log *logger.Logger) *Wire {
	httpClient := cfg.HTTP
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	agg := aggregator.New(cfg.Network.AggregatorURL, httpClient)

	accounts := accountsvc.New(accountsvc.Deps{
		Network:    cfg.Network,
		Connector:  wallet.NewConnector(wallet.HTTPDialer(httpClient)),
		Keys:       wallet.KeyGenerator{},
		Aggregator: agg,
		Chain:      chain.Dialer{HTTP: httpClient},
		HTTP:       httpClient,
		Log:        log.With("component", "account"),
	})

	return &Wire{
		Config:     cfg,
		Log:        log,
		Aggregator: agg,
		Accounts:   accounts,
		HTTP:       httpClient,
	}
}
