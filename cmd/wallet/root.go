package main

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command.
type globalFlags struct {
	Agent string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "wallet",
		Short: "Custodial USDC/ETH wallet on Base",
		Long: `wallet moves USDC and ETH out of a single Coinbase Developer Platform
server account. Keys never leave CDP; every transfer is checked against the
recipient format, the configured USDC range and the live balance first.

Configuration is read from the environment and an optional .env.cdp file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.Agent, "agent", "", "logical identity: PinchyMeow or F0x (default $AGENT)")

	root.AddCommand(
		newInfoCmd(&flags),
		newAddressCmd(&flags),
		newBalanceCmd(&flags),
		newTransferCmd(&flags),
		newCheckCmd(&flags),
		newHistoryCmd(&flags),
		newReportCmd(&flags),
		newServeCmd(&flags),
	)
	return root
}
