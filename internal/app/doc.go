// Package app wires application dependencies for the CLI.
//
// LoadConfig resolves the target network and runtime options from the
// built-in network catalogue, an optional YAML catalogue file, .env, the
// environment and command-line overrides. NewWire builds the logger,
// aggregator client, wallet connector and account service from a Config and
// exposes them via the Wire struct for commands to use.
package app
