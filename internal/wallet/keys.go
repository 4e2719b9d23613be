package wallet

import (
	"ethdk/internal/crypto"
	"ethdk/internal/domain"
)

// KeyGenerator issues random BLS secret keys.
type KeyGenerator struct{}

// GeneratePrivateKey returns a fresh key as 0x-prefixed hex.
func (KeyGenerator) GeneratePrivateKey() (domain.PrivateKey, error) {
	k, err := crypto.GenerateSecretKey()
	if err != nil {
		return "", err
	}
	defer k.Wipe()
	return domain.PrivateKey(k.Hex()), nil
}

var _ domain.KeyGenerator = KeyGenerator{}
