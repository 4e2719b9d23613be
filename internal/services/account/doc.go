// Package account implements BLS smart-contract wallet accounts.
//
// An Account binds one private key to one network. It signs operations with
// the wallet capability, submits them to the network's aggregator and reads
// its native balance from the network's RPC endpoint. Nonces are always read
// from chain state just before signing; nothing is cached between calls.
package account
