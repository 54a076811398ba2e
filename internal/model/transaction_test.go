package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogRequestValidate(t *testing.T) {
	bad := TransactionStatus("pending")
	assert.Error(t, (&LogRequest{Status: &bad}).Validate())

	asset := Asset("BTC")
	assert.Error(t, (&LogRequest{Asset: &asset}).Validate())

	from := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	assert.Error(t, (&LogRequest{From: &from, To: &to}).Validate())

	ok := TransactionStatusFailed
	assert.NoError(t, (&LogRequest{Status: &ok}).Validate())
}

func TestLogRequestMatch(t *testing.T) {
	ts := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	tx := Transaction{TxID: "0xabc", Asset: AssetToken, Status: TransactionStatusSubmitted, Timestamp: ts}

	usdc := AssetToken
	eth := AssetNative
	assert.True(t, (&LogRequest{Asset: &usdc}).Match(tx))
	assert.False(t, (&LogRequest{Asset: &eth}).Match(tx))

	after := ts.Add(time.Minute)
	assert.False(t, (&LogRequest{From: &after}).Match(tx))

	id := "0xdef"
	assert.False(t, (&LogRequest{TxID: &id}).Match(tx))
	assert.True(t, (&LogRequest{}).Match(tx))
}

func TestParseAsset(t *testing.T) {
	a, err := ParseAsset("usdc")
	assert.NoError(t, err)
	assert.Equal(t, AssetToken, a)
	assert.Equal(t, 6, a.Decimals())

	a, err = ParseAsset(" ETH ")
	assert.NoError(t, err)
	assert.Equal(t, 18, a.Decimals())

	_, err = ParseAsset("sol")
	assert.Error(t, err)
}
