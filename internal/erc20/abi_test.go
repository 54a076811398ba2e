package erc20

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipient = "0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6"

func TestSelectorsMatchSignatures(t *testing.T) {
	sel := Selector(TransferSignature)
	assert.Equal(t, TransferMethodID, hex.EncodeToString(sel[:]))

	sel = Selector(BalanceOfSignature)
	assert.Equal(t, BalanceOfMethodID, hex.EncodeToString(sel[:]))
}

func TestEncodeTransfer(t *testing.T) {
	data, err := EncodeTransfer(common.HexToAddress(recipient), big.NewInt(2500000))
	require.NoError(t, err)

	want := "a9059cbb" +
		strings.Repeat("0", 24) + "d75f990150d00eb02cfa22ff49c659486c1ae4c6" +
		strings.Repeat("0", 58) + "2625a0"
	assert.Equal(t, want, hex.EncodeToString(data))
	assert.Len(t, data, TransferDataLen)
}

func TestEncodeTransferBounds(t *testing.T) {
	to := common.HexToAddress(recipient)

	data, err := EncodeTransfer(to, big.NewInt(0))
	require.NoError(t, err)
	require.Len(t, data, 68)
	assert.Equal(t, make([]byte, 32), data[36:])
	assert.Equal(t, make([]byte, 12), data[4:16])
	assert.Equal(t, to.Bytes(), data[16:36])

	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	data, err = EncodeTransfer(to, max)
	require.NoError(t, err)
	require.Len(t, data, 68)
	assert.Equal(t, strings.Repeat("ff", 32), hex.EncodeToString(data[36:]))
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))

	// input is not mutated by encoding
	assert.Equal(t, 256, max.BitLen())
}

func TestEncodeTransferRejects(t *testing.T) {
	to := common.HexToAddress(recipient)

	_, err := EncodeTransfer(to, big.NewInt(-1))
	assert.Error(t, err)

	_, err = EncodeTransfer(to, new(big.Int).Lsh(big.NewInt(1), 256))
	assert.Error(t, err)

	_, err = EncodeTransfer(to, nil)
	assert.Error(t, err)
}

func TestEncodeTransferDeterministic(t *testing.T) {
	to := common.HexToAddress(recipient)
	a, err := EncodeTransfer(to, big.NewInt(123456789))
	require.NoError(t, err)
	b, err := EncodeTransfer(to, big.NewInt(123456789))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeBalanceOf(t *testing.T) {
	data := EncodeBalanceOf(common.HexToAddress(recipient))
	assert.Equal(t, "70a08231"+strings.Repeat("0", 24)+"d75f990150d00eb02cfa22ff49c659486c1ae4c6", hex.EncodeToString(data))
}

func TestDecodeUint256(t *testing.T) {
	word := common.LeftPadBytes(big.NewInt(10_000_000).Bytes(), 32)
	got, err := DecodeUint256(word)
	require.NoError(t, err)
	assert.Equal(t, "10000000", got.String())

	got, err = DecodeUint256(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())

	_, err = DecodeUint256([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEncodedSelectorsComeFromSignatures(t *testing.T) {
	data, err := EncodeTransfer(common.HexToAddress(recipient), big.NewInt(1))
	require.NoError(t, err)
	want := Selector(TransferSignature)
	assert.Equal(t, want[:], data[:4])
	assert.Equal(t, TransferMethodID, hex.EncodeToString(data[:4]))

	data = EncodeBalanceOf(common.HexToAddress(recipient))
	want = Selector(BalanceOfSignature)
	assert.Equal(t, want[:], data[:4])
	assert.Equal(t, BalanceOfMethodID, hex.EncodeToString(data[:4]))
}
