package crypto

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Hash returns keccak256 over the four public key words. Verification
// gateways key wallets by this value.
func (p *PublicKey) Hash() common.Hash {
	w := p.Words()
	buf := make([]byte, 0, len(w)*wordBytes)
	for i := range w {
		buf = append(buf, w[i][:]...)
	}
	return common.BytesToHash(keccak256(buf))
}

// Fingerprint returns a short hex fingerprint of the public key.
//
// It truncates Hash to 10 bytes (20 hex chars).
func (p *PublicKey) Fingerprint() string {
	h := p.Hash()
	return hex.EncodeToString(h[:10])
}
