// Command aggregator is a minimal in-memory BLS bundle aggregator for local
// development and tests.
//
// Endpoints
//
//	POST /bundle        verify and accept a signed bundle
//	GET  /bundle/:hash  fetch an accepted bundle
//	GET  /health        liveness
//
// A bundle is accepted when every public key and the aggregate signature
// decode to valid curve points, every operation encodes for the configured
// chain id, and the aggregate signature verifies over all of them. Accepted
// bundles answer {"hash": "0x..."}, the keccak256 of the bundle JSON.
// Anything else answers 400 with {"failures": [{"type", "description"}]}.
//
// Nothing is submitted on chain and nothing survives a restart.
package main
