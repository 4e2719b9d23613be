package wallet

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"ethdk/internal/domain"
)

// EncodeMessage returns the bytes a wallet signs for op on chainID.
func EncodeMessage(chainID *big.Int, op domain.Operation) ([]byte, error) {
	nonce, err := parseUint256("nonce", op.Nonce)
	if err != nil {
		return nil, err
	}
	chain, overflow := uint256.FromBig(chainID)
	if overflow || chainID.Sign() < 0 {
		return nil, &domain.InvalidInputError{Field: "chainId", Reason: "out of range"}
	}

	packed := make([]byte, 0, len(op.Actions)*(32+common.AddressLength+32))
	for _, a := range op.Actions {
		value, err := parseUint256("ethValue", a.EthValue)
		if err != nil {
			return nil, err
		}
		if !common.IsHexAddress(a.ContractAddress) {
			return nil, &domain.InvalidInputError{
				Field:  "contractAddress",
				Reason: "not a hex address: " + a.ContractAddress,
			}
		}
		data, err := hexutil.Decode(a.EncodedFunction)
		if err != nil {
			return nil, &domain.InvalidInputError{Field: "encodedFunction", Reason: err.Error()}
		}
		v := value.Bytes32()
		packed = append(packed, v[:]...)
		packed = append(packed, common.HexToAddress(a.ContractAddress).Bytes()...)
		packed = append(packed, ethcrypto.Keccak256(data)...)
	}

	c, n := chain.Bytes32(), nonce.Bytes32()
	msg := make([]byte, 0, 96)
	msg = append(msg, c[:]...)
	msg = append(msg, n[:]...)
	msg = append(msg, ethcrypto.Keccak256(packed)...)
	return msg, nil
}

// parseUint256 accepts decimal or 0x-prefixed hex.
func parseUint256(field, s string) (*uint256.Int, error) {
	if s == "" {
		return nil, &domain.InvalidInputError{Field: field, Reason: "empty"}
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || b.Sign() < 0 {
			return nil, &domain.InvalidInputError{Field: field, Reason: "bad hex number " + s}
		}
		v, overflow := uint256.FromBig(b)
		if overflow {
			return nil, &domain.InvalidInputError{Field: field, Reason: "exceeds 256 bits"}
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, &domain.InvalidInputError{Field: field, Reason: err.Error()}
	}
	return v, nil
}
