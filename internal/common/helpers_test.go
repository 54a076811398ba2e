package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	cases := map[string]string{
		"2.5":      "2500000",
		"10":       "10000000",
		"0.000001": "1",
		".5":       "500000",
		"5.":       "5000000",
		" 1.25 ":   "1250000",
		"0":        "0",
	}
	for in, want := range cases {
		got, err := ParseUnits(in, TokenDecimals)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}
}

func TestParseUnitsRejects(t *testing.T) {
	for _, in := range []string{"", ".", "-1", "+1", "1e3", "NaN", "Inf", "1.2.3", "0x10", "1.0000001", "1,5"} {
		_, err := ParseUnits(in, TokenDecimals)
		assert.Error(t, err, in)
	}
}

func TestParseUnitsNative(t *testing.T) {
	got, err := ParseUnits("0.001", NativeDecimals)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", got.String())
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "24.981836", FormatUnits(big.NewInt(24981836), TokenDecimals))
	assert.Equal(t, "0.000001", MicroToUSDC(big.NewInt(1)))
	assert.Equal(t, "0.000000", MicroToUSDC(nil))
	assert.Equal(t, "1.000000000000000000", WeiToETH(big.NewInt(1e18)))
	assert.Equal(t, "-0.500000", FormatUnits(big.NewInt(-500000), TokenDecimals))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
}

func TestCompareAmounts(t *testing.T) {
	cmp, err := CompareAmounts("9.999999", "10", TokenDecimals)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareAmounts("5.0", "5", TokenDecimals)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	_, err = CompareAmounts("abc", "5", TokenDecimals)
	assert.Error(t, err)
}

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress("0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6"))
	assert.True(t, IsAddress("0xd75f990150d00eb02cfa22ff49c659486c1ae4c6"))
	assert.False(t, IsAddress("D75f990150D00EB02CfA22Ff49c659486C1AE4C6"))
	assert.False(t, IsAddress("0xD75f990150D00EB02CfA22Ff49c659486C1AE4C"))
	assert.False(t, IsAddress("0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6a"))
	assert.False(t, IsAddress("0xZ75f990150D00EB02CfA22Ff49c659486C1AE4C6"))
}
