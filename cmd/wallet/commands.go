package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AlexZinkM/cdp-wallet/evm"
	"github.com/AlexZinkM/cdp-wallet/internal/api"
	"github.com/AlexZinkM/cdp-wallet/internal/handler"
	"github.com/AlexZinkM/cdp-wallet/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

func newInfoCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the managed account, its balances and an address QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags.Agent, appOptions{chain: true})
			if err != nil {
				return err
			}
			defer a.close()

			account, err := a.wallet.Account(cmd.Context())
			if err != nil {
				return err
			}
			bal, err := a.wallet.GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			qr, err := evm.TerminalQR(account.Address)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Agent:\t%s\n", a.wallet.Agent())
			fmt.Fprintf(tw, "Address:\t%s\n", account.Address)
			fmt.Fprintf(tw, "Account kind:\t%s\n", account.Kind)
			fmt.Fprintf(tw, "Custody:\t%s\n", account.Provider)
			fmt.Fprintf(tw, "Network:\t%s (chain id %d)\n", account.Network, account.ChainID)
			fmt.Fprintf(tw, "USDC:\t%s\n", bal.USDC)
			fmt.Fprintf(tw, "ETH:\t%s\n", bal.ETH)
			if bal.ETHUSD != "" {
				fmt.Fprintf(tw, "ETH in USD:\t~%s (rate %s)\n", bal.ETHUSD, bal.ETHRate)
			}
			fmt.Fprintf(tw, "Explorer:\t%s\n", a.wallet.Chain().AddressURL(account.Address))
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, qr)
			return nil
		},
	}
}

func newAddressCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the managed account address, creating the account on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags.Agent, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			account, err := a.accounts.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), account.Address)
			return nil
		},
	}
}

func newBalanceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show USDC and ETH balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags.Agent, appOptions{chain: true})
			if err != nil {
				return err
			}
			defer a.close()

			bal, err := a.wallet.GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "USDC: %s\n", bal.USDC)
			fmt.Fprintf(out, "ETH:  %s\n", bal.ETH)
			return nil
		},
	}
}

func newTransferCmd(flags *globalFlags) *cobra.Command {
	var (
		assetFlag string
		yes       bool
	)
	cmd := &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Send USDC (default) or ETH to a recipient",
		Long: `Send USDC (default) or ETH from the managed account.

The amount is in human units, e.g. 2.5 for 2.5 USDC. USDC transfers must be
within TRANSFER_MIN and TRANSFER_MAX. Nothing is submitted unless every check
passes; on a terminal the transfer is confirmed first unless --yes is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := transferRequest(args, assetFlag)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags.Agent, appOptions{chain: true, credentials: true})
			if err != nil {
				return err
			}
			defer a.close()

			check, err := a.wallet.Check(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printCheck(out, check)

			if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
				ok, err := confirm(cmd.InOrStdin(), out, "Submit this transfer?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			resp, err := a.wallet.Transfer(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Transaction submitted: %s\n", resp.TxID)
			fmt.Fprintf(out, "Explorer: %s\n", resp.ExplorerURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&assetFlag, "asset", "usdc", "asset to send: usdc or eth")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var assetFlag string
	cmd := &cobra.Command{
		Use:   "check <recipient> <amount>",
		Short: "Run every transfer check and print the payload without submitting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := transferRequest(args, assetFlag)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags.Agent, appOptions{chain: true})
			if err != nil {
				return err
			}
			defer a.close()

			check, err := a.wallet.Check(cmd.Context(), req)
			if err != nil {
				return err
			}
			printCheck(cmd.OutOrStdout(), check)
			fmt.Fprintln(cmd.OutOrStdout(), "All checks passed. Nothing was submitted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&assetFlag, "asset", "usdc", "asset to send: usdc or eth")
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	filters := map[string]*string{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled transfers of the agent, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := handler.ParseLogRequest(func(name string) string {
				if v, ok := filters[name]; ok {
					return *v
				}
				return ""
			})
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags.Agent, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			history, err := a.wallet.GetTransactions(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSTATUS\tASSET\tAMOUNT\tTO\tTX")
			for _, tx := range history.Transactions {
				ref := tx.TxID
				if tx.Status == model.TransactionStatusFailed {
					ref = tx.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.Timestamp.UTC().Format(time.RFC3339), tx.Status, tx.Asset, tx.Amount, tx.To, ref)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d transfers. Sent: %s USDC, %s ETH\n",
				len(history.Transactions), history.TotalSentUSD, history.TotalSentETH)
			return nil
		},
	}
	for name, usage := range map[string]string{
		"from":   "start date (YYYY-MM-DD)",
		"to":     "end date (YYYY-MM-DD), inclusive",
		"asset":  "usdc or eth",
		"status": "submitted or failed",
		"txId":   "transaction id",
	} {
		filters[name] = cmd.Flags().String(name, "", usage)
	}
	return cmd
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report [YYYY-MM-DD]",
		Short: "Summarise every agent's transfers for a UTC day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if len(args) == 1 {
				var err error
				day, err = time.Parse(dateLayout, args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
				}
			}

			a, err := newApp(cmd.Context(), flags.Agent, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.wallet.DailyReport(day)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet HTTP API with Swagger UI and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags.Agent, appOptions{chain: true})
			if err != nil {
				return err
			}
			defer a.close()

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           api.SetupRouter(a.wallet, a.metrics, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("HTTP server listening",
					zap.String("addr", srv.Addr),
					zap.String("agent", a.wallet.Agent()),
					zap.String("swagger", "/swagger/index.html"))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server failed: %w", err)
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func transferRequest(args []string, assetFlag string) (model.TransferRequest, error) {
	asset, err := model.ParseAsset(assetFlag)
	if err != nil {
		return model.TransferRequest{}, err
	}
	return model.TransferRequest{
		Recipient: strings.TrimSpace(args[0]),
		Amount:    strings.TrimSpace(args[1]),
		Asset:     asset,
	}, nil
}

func printCheck(out io.Writer, check *model.CheckResponse) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "From:\t%s\n", check.From)
	fmt.Fprintf(tw, "To:\t%s\n", check.To)
	fmt.Fprintf(tw, "Amount:\t%s %s (raw %s)\n", check.Amount, check.Asset, check.RawAmount)
	fmt.Fprintf(tw, "Balance:\t%s %s\n", check.Balance, check.Asset)
	fmt.Fprintf(tw, "Call target:\t%s\n", check.Target)
	fmt.Fprintf(tw, "Call data:\t%s\n", check.Data)
	fmt.Fprintf(tw, "Call value:\t%s\n", check.Value)
	tw.Flush()
}

func printReport(out io.Writer, report *model.DailyReport) {
	fmt.Fprintf(out, "Daily report %s\n\n", report.Date)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tTOTAL\tSUBMITTED\tFAILED\tSENT USDC\tSENT ETH")
	for _, ar := range report.Agents {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n", ar.Agent, ar.Count, ar.Submitted, ar.Failed, ar.SentUSDC, ar.SentETH)
	}
	fmt.Fprintf(tw, "ALL\t%d\t%d\t%d\t\t\n", report.Total, report.Submitted, report.Failed)
	tw.Flush()
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
