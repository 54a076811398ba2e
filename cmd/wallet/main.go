// Command wallet moves USDC and ETH out of a Coinbase CDP server account on Base.
// Usage: go run ./cmd/wallet transfer <recipient> <amount>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(walleterr.ExitCode(err))
	}
}
