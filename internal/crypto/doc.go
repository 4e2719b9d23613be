// Package crypto implements the BLS signature scheme used by BLS wallets.
//
// Contents
//
//   - Secret key generation and import over the BN254 scalar field
//     (GenerateSecretKey, SecretKeyFromHex)
//   - Signing with signatures in G1 and public keys in G2 (SecretKey.Sign)
//   - Signature aggregation and aggregate verification (Aggregate,
//     VerifyAggregate)
//   - Fixed-width hex encoding of points in the word order the on-chain
//     verifier expects (PublicKey.Hex, SignatureFromHex, ...)
//   - Public key hashes and short fingerprints (PublicKey.Hash,
//     PublicKey.Fingerprint)
//
// # Notes
//
// Messages are mapped to G1 with the hash-to-curve construction from
// gnark-crypto using the domain tag keccak256("BLS_WALLET"). Secret keys are
// wiped on request; callers should call SecretKey.Wipe once a key is no
// longer needed.
package crypto
