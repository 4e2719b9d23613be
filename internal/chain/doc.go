// Package chain wraps the go-ethereum JSON-RPC client for the few reads an
// account needs: chain id, code, contract calls and native balance.
//
// Every transport failure is returned as a *domain.ConnectionError naming
// the RPC endpoint. The package also formats wei amounts in ether.
package chain
