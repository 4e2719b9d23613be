package crypto

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"

	"ethdk/internal/util/memzero"
)

// SecretKeyBytes is the size of an encoded secret key.
const SecretKeyBytes = fr.Bytes

var (
	// ErrInvalidSecretKey is returned for keys that are not 1..32 bytes of hex
	// or that reduce to zero.
	ErrInvalidSecretKey = errors.New("invalid BLS secret key")
	// ErrNoSignatures is returned when aggregating an empty set.
	ErrNoSignatures = errors.New("no signatures to aggregate")
	// ErrLengthMismatch is returned when public keys and messages differ in count.
	ErrLengthMismatch = errors.New("public key and message counts differ")
)

var signingDomain = keccak256([]byte("BLS_WALLET"))

// SecretKey is a BLS secret scalar.
type SecretKey struct {
	s fr.Element
}

// PublicKey is a BLS public key, a point in G2.
type PublicKey struct {
	p bn254.G2Affine
}

// Signature is a BLS signature, a point in G1.
type Signature struct {
	p bn254.G1Affine
}

// GenerateSecretKey returns a uniformly random non-zero secret key.
func GenerateSecretKey() (*SecretKey, error) {
	var k SecretKey
	for k.s.IsZero() {
		if _, err := k.s.SetRandom(); err != nil {
			return nil, err
		}
	}
	return &k, nil
}

// SecretKeyFromHex parses a 0x-prefixed big-endian key. Values at or above
// the group order are reduced.
func SecretKeyFromHex(h string) (*SecretKey, error) {
	raw, err := hexutil.Decode(h)
	if err != nil || len(raw) == 0 || len(raw) > SecretKeyBytes {
		return nil, ErrInvalidSecretKey
	}
	defer memzero.Zero(raw)

	var k SecretKey
	k.s.SetBytes(raw)
	if k.s.IsZero() {
		return nil, ErrInvalidSecretKey
	}
	return &k, nil
}

// Hex returns the key as 0x-prefixed 32-byte hex.
func (k *SecretKey) Hex() string {
	b := k.s.Bytes()
	defer memzero.Zero(b[:])
	return hexutil.Encode(b[:])
}

// PublicKey derives the G2 public key.
func (k *SecretKey) PublicKey() *PublicKey {
	_, _, _, g2 := bn254.Generators()
	var pk PublicKey
	pk.p.ScalarMultiplication(&g2, k.s.BigInt(new(big.Int)))
	return &pk
}

// Sign maps msg to G1 and multiplies it by the secret scalar.
func (k *SecretKey) Sign(msg []byte) (*Signature, error) {
	h, err := HashToPoint(msg)
	if err != nil {
		return nil, err
	}
	var sig Signature
	sig.p.ScalarMultiplication(&h, k.s.BigInt(new(big.Int)))
	return &sig, nil
}

// Wipe zeroes the scalar. The key is unusable afterwards.
func (k *SecretKey) Wipe() {
	memzero.Words(k.s[:])
}

// HashToPoint maps msg to G1 under the wallet signing domain.
func HashToPoint(msg []byte) (bn254.G1Affine, error) {
	return bn254.HashToG1(msg, signingDomain)
}

// Aggregate sums signatures into one.
func Aggregate(sigs []*Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, ErrNoSignatures
	}
	var acc bn254.G1Jac
	acc.FromAffine(&sigs[0].p)
	for _, s := range sigs[1:] {
		acc.AddMixed(&s.p)
	}
	var out Signature
	out.p.FromJacobian(&acc)
	return &out, nil
}

// Verify checks a single signature.
func Verify(pub *PublicKey, msg []byte, sig *Signature) (bool, error) {
	return VerifyAggregate([]*PublicKey{pub}, [][]byte{msg}, sig)
}

// VerifyAggregate checks that sig aggregates a signature by pubs[i] over
// msgs[i] for every i, i.e. e(sig, g2) == prod e(H(msgs[i]), pubs[i]).
func VerifyAggregate(pubs []*PublicKey, msgs [][]byte, sig *Signature) (bool, error) {
	if len(pubs) != len(msgs) {
		return false, ErrLengthMismatch
	}
	if len(pubs) == 0 {
		return false, ErrNoSignatures
	}
	_, _, _, g2 := bn254.Generators()

	g1s := make([]bn254.G1Affine, 0, len(pubs)+1)
	g2s := make([]bn254.G2Affine, 0, len(pubs)+1)
	g1s = append(g1s, sig.p)
	g2s = append(g2s, g2)
	for i := range pubs {
		h, err := HashToPoint(msgs[i])
		if err != nil {
			return false, err
		}
		var neg bn254.G1Affine
		neg.Neg(&h)
		g1s = append(g1s, neg)
		g2s = append(g2s, pubs[i].p)
	}
	return bn254.PairingCheck(g1s, g2s)
}

// keccak256 is the legacy Keccak-256 used by Ethereum, shared by the signing
// domain tag and public key hashing.
func keccak256(b []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil)
}
