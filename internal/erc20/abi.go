// Package erc20 builds and parses the two ERC-20 calls the wallet needs
// by hand, without an ABI binding layer.
package erc20

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"golang.org/x/crypto/sha3"
)

// ERC-20 function signatures
const (
	TransferSignature  = "transfer(address,uint256)"
	BalanceOfSignature = "balanceOf(address)"

	TransferMethodID  = "a9059cbb"
	BalanceOfMethodID = "70a08231"
)

const (
	wordSize = 32
	// TransferDataLen is selector + recipient word + amount word.
	TransferDataLen = 4 + 2*wordSize
)

var (
	transferSelector  = Selector(TransferSignature)
	balanceOfSelector = Selector(BalanceOfSignature)
)

// Selector returns the first 4 bytes of the Keccak-256 hash of a canonical signature.
func Selector(signature string) [4]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var out [4]byte
	copy(out[:], h.Sum(nil))
	return out
}

// EncodeTransfer encodes transfer(recipient, amount) call data.
// Output is always 68 bytes: selector, left-padded address word, left-padded amount word.
func EncodeTransfer(recipient common.Address, amount *big.Int) ([]byte, error) {
	if err := checkUint256(amount); err != nil {
		return nil, err
	}

	data := make([]byte, 0, TransferDataLen)
	data = append(data, transferSelector[:]...)
	data = append(data, common.LeftPadBytes(recipient.Bytes(), wordSize)...)
	data = append(data, math.U256Bytes(new(big.Int).Set(amount))...)
	return data, nil
}

// EncodeBalanceOf encodes balanceOf(owner) call data.
func EncodeBalanceOf(owner common.Address) []byte {
	data := make([]byte, 0, 4+wordSize)
	data = append(data, balanceOfSelector[:]...)
	return append(data, common.LeftPadBytes(owner.Bytes(), wordSize)...)
}

// DecodeUint256 decodes the first word of a call return as an unsigned integer.
// An empty return decodes to zero; a non-empty return shorter than a word is an error.
func DecodeUint256(data []byte) (*big.Int, error) {
	if len(data) == 0 {
		return new(big.Int), nil
	}
	if len(data) < wordSize {
		return nil, fmt.Errorf("invalid uint256 return length %d", len(data))
	}
	return new(big.Int).SetBytes(data[:wordSize]), nil
}

func checkUint256(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("amount is required")
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if amount.BitLen() > 256 {
		return fmt.Errorf("amount does not fit in uint256")
	}
	return nil
}
