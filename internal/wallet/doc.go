// Package wallet implements domain.Wallet on top of BLS keys and a
// verification gateway contract.
//
// A wallet's address is the one the gateway has registered for the hash of
// its public key, or, for wallets not deployed yet, the CREATE2 address the
// gateway will deploy it at. Operations are signed over
//
//	abi.encodePacked(uint256 chainId, uint256 nonce, bytes32 actionsHash)
//
// where actionsHash is keccak256 over every action packed as
// (uint256 ethValue, address contractAddress, bytes32 keccak256(encodedFunction)).
// EncodeMessage exposes the encoding so aggregators can verify bundles.
package wallet
