// Package commands defines the ethdk CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen    Print a fresh BLS private key
//   - create    Create an account (generating a key if none is given)
//   - address   Print the wallet address for a key
//   - send      Sign and submit a transaction bundle
//   - trustee   Set the recovery trustee of the wallet
//   - balance   Print the wallet balance in ether
//
// # Implementation
//
// The root command loads the configuration (built-in networks, .env,
// environment, flags) and builds the dependency graph before any subcommand
// runs, so handlers share one HTTP client, logger and account service.
// The private key comes from --key or ETHDK_PRIVATE_KEY.
package commands
