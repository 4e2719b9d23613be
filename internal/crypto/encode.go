package crypto

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"ethdk/internal/domain"
)

const wordBytes = 32

var (
	// ErrInvalidPoint is returned for encodings that are not canonical field
	// elements or do not lie in the prime-order subgroup.
	ErrInvalidPoint = errors.New("invalid curve point encoding")
)

// Words returns the public key as (x.im, x.re, y.im, y.re), each 32 bytes.
func (p *PublicKey) Words() [4][wordBytes]byte {
	return [4][wordBytes]byte{
		p.p.X.A1.Bytes(),
		p.p.X.A0.Bytes(),
		p.p.Y.A1.Bytes(),
		p.p.Y.A0.Bytes(),
	}
}

// Hex returns Words as 0x-prefixed hex strings.
func (p *PublicKey) Hex() domain.BLSPublicKey {
	w := p.Words()
	var out domain.BLSPublicKey
	for i := range w {
		out[i] = hexutil.Encode(w[i][:])
	}
	return out
}

// PublicKeyFromHex parses the encoding produced by PublicKey.Hex.
func PublicKeyFromHex(h domain.BLSPublicKey) (*PublicKey, error) {
	var words [4]fp.Element
	for i := range h {
		if err := setWord(&words[i], h[i]); err != nil {
			return nil, err
		}
	}
	var pk PublicKey
	pk.p.X.A1, pk.p.X.A0 = words[0], words[1]
	pk.p.Y.A1, pk.p.Y.A0 = words[2], words[3]
	if !pk.p.IsOnCurve() || !pk.p.IsInSubGroup() || pk.p.IsInfinity() {
		return nil, ErrInvalidPoint
	}
	return &pk, nil
}

// Hex returns the signature as (x, y) 0x-prefixed hex strings.
func (s *Signature) Hex() domain.BLSSignature {
	x, y := s.p.X.Bytes(), s.p.Y.Bytes()
	return domain.BLSSignature{hexutil.Encode(x[:]), hexutil.Encode(y[:])}
}

// SignatureFromHex parses the encoding produced by Signature.Hex.
func SignatureFromHex(h domain.BLSSignature) (*Signature, error) {
	var sig Signature
	if err := setWord(&sig.p.X, h[0]); err != nil {
		return nil, err
	}
	if err := setWord(&sig.p.Y, h[1]); err != nil {
		return nil, err
	}
	if !sig.p.IsOnCurve() || !sig.p.IsInSubGroup() {
		return nil, ErrInvalidPoint
	}
	return &sig, nil
}

func setWord(e *fp.Element, h string) error {
	b, err := hexutil.Decode(h)
	if err != nil || len(b) != wordBytes {
		return ErrInvalidPoint
	}
	if new(big.Int).SetBytes(b).Cmp(fp.Modulus()) >= 0 {
		return ErrInvalidPoint
	}
	e.SetBytes(b)
	return nil
}
