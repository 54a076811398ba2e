package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":    true,
		"YES\n":  true,
		" yes ":  true,
		"n\n":    false,
		"\n":     false,
		"":       false,
		"sure\n": false,
	} {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(input), &out, "Submit?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "Submit? [y/N]: ", out.String())
	}
}

func TestTransferRequest(t *testing.T) {
	req, err := transferRequest([]string{" 0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6 ", "2.5"}, "USDC")
	require.NoError(t, err)
	assert.Equal(t, model.TransferRequest{
		Recipient: "0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6",
		Amount:    "2.5",
		Asset:     model.AssetToken,
	}, req)

	_, err = transferRequest([]string{"0x", "1"}, "sol")
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, &model.DailyReport{
		Date: "2026-02-14", Total: 3, Submitted: 2, Failed: 1,
		Agents: []model.AgentReport{{Agent: "PinchyMeow", Count: 3, Submitted: 2, Failed: 1, SentUSDC: "3.500000", SentETH: "0.000000000000000000"}},
	})
	assert.Contains(t, out.String(), "Daily report 2026-02-14")
	assert.Contains(t, out.String(), "PinchyMeow")
	assert.Contains(t, out.String(), "3.500000")
}

func TestRootCommandsAndArgs(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"info", "address", "balance", "transfer", "check", "history", "report", "serve"})

	root.SetArgs([]string{"transfer", "0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	assert.Error(t, err)
	assert.Equal(t, 1, walleterr.ExitCode(err))
}
