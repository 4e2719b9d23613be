package chain

import (
	"context"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"ethdk/internal/domain"
)

// Client is a JSON-RPC client bound to one endpoint.
type Client struct {
	url string
	eth *ethclient.Client
}

// Dial connects to rpcURL. For HTTP endpoints no request is made until the
// first call.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	return DialHTTP(ctx, rpcURL, nil)
}

// DialHTTP is Dial with a custom HTTP client for http(s) endpoints. A nil
// httpClient uses the rpc package default.
func DialHTTP(ctx context.Context, rpcURL string, httpClient *http.Client) (*Client, error) {
	var opts []rpc.ClientOption
	if httpClient != nil {
		opts = append(opts, rpc.WithHTTPClient(httpClient))
	}
	rc, err := rpc.DialOptions(ctx, rpcURL, opts...)
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: rpcURL, Err: err}
	}
	return &Client{url: rpcURL, eth: ethclient.NewClient(rc)}, nil
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string { return c.url }

// ChainID returns the chain id reported by the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, c.wrap(err)
	}
	return id, nil
}

// BalanceAt returns the wei balance of account at blockNumber (nil = latest).
func (c *Client) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	bal, err := c.eth.BalanceAt(ctx, account, blockNumber)
	if err != nil {
		return nil, c.wrap(err)
	}
	return bal, nil
}

// CodeAt returns the contract code at account.
func (c *Client) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	code, err := c.eth.CodeAt(ctx, account, blockNumber)
	if err != nil {
		return nil, c.wrap(err)
	}
	return code, nil
}

// CallContract executes a read-only call.
func (c *Client) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	out, err := c.eth.CallContract(ctx, call, blockNumber)
	if err != nil {
		return nil, c.wrap(err)
	}
	return out, nil
}

// Close releases the underlying connection.
func (c *Client) Close() { c.eth.Close() }

func (c *Client) wrap(err error) error {
	return &domain.ConnectionError{Endpoint: c.url, Err: err}
}

// Dialer opens a new Client per call. HTTP is optional.
type Dialer struct {
	HTTP *http.Client
}

// DialChain implements domain.ChainDialer.
func (d Dialer) DialChain(ctx context.Context, rpcURL string) (domain.ChainReader, error) {
	c, err := DialHTTP(ctx, rpcURL, d.HTTP)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var (
	_ domain.ChainReader = (*Client)(nil)
	_ domain.ChainDialer = Dialer{}
)
