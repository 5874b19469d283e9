package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/cctp"
	"github.com/stablekit/usdcli/internal/ui"
)

var (
	bridgeTo        string
	bridgeAmount    string
	bridgeFromChain string
	bridgeToChain   string
	bridgeWallet    string
	bridgeAttempts  int
	bridgeInterval  time.Duration
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Bridge USDC across chains via CCTP",
	Long: `Bridge USDC from one chain to another with Circle's Cross-Chain
Transfer Protocol. Four steps: approve the TokenMessenger, burn on the
source chain, wait for Circle's attestation, mint on the destination chain.

If the attestation does not arrive within the polling budget the burn
transaction hash is reported so the transfer can be completed later with
` + "`usdcli status`" + `.

Examples:
  usdcli bridge --to 0xABC... --amount 25 --from-chain base --to-chain arbitrum
  usdcli bridge --to 0xABC... --amount 10 --from-chain ethereum --to-chain base --mainnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if bridgeTo == "" || bridgeAmount == "" {
			return fmt.Errorf("--to and --amount are required")
		}
		src, err := resolveChain(bridgeFromChain)
		if err != nil {
			return err
		}
		dst, err := resolveChain(bridgeToChain)
		if err != nil {
			return err
		}
		// Compare resolved names, not flag text; lookup is case-insensitive.
		if src.Name == dst.Name {
			return fmt.Errorf("--from-chain and --to-chain must differ")
		}
		mode := cfg.NetworkMode

		if !src.SupportsBridge(mode) || !dst.SupportsBridge(mode) {
			return fmt.Errorf("CCTP not supported for %s -> %s (%s) — run `usdcli chains` for the support matrix",
				src.Name, dst.Name, mode)
		}

		recipient, err := resolveRecipient(bridgeTo)
		if err != nil {
			return err
		}

		signer, err := resolveSigner(bridgeWallet)
		if err != nil {
			return err
		}

		if !jsonOut {
			fmt.Println(ui.KeyValueBlock("Bridge Preview", [][2]string{
				{"From", ui.Addr(signer.Address())},
				{"Recipient", ui.Addr(recipient)},
				{"Amount", bridgeAmount + " USDC"},
				{"Route", src.DisplayName + " → " + dst.DisplayName + " (" + mode + ")"},
			}))
		}
		if !confirmMainnet("BRIDGE") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srcClient, err := newClient(ctx, src)
		if err != nil {
			return err
		}
		dstClient, err := newClient(ctx, dst)
		if err != nil {
			return err
		}

		bridger := cctp.NewBridger(src, dst, mode, srcClient, dstClient, signer)
		bridger.Poll.MaxAttempts = bridgeAttempts
		bridger.Poll.Interval = bridgeInterval
		if !jsonOut {
			bridger.Progress = func(msg string) {
				fmt.Println(ui.Meta(msg))
			}
		}

		result, err := bridger.Bridge(ctx, recipient, bridgeAmount)
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(result)
		}

		if result.AttestationPending {
			fmt.Println(ui.Warn("Partial success — attestation pending"))
			fmt.Println("  " + ui.Addr("Burn TX: "+result.BurnTx))
			fmt.Println("  " + ui.Meta(result.Note))
			return nil
		}

		fmt.Println(ui.Success("Bridge complete!"))
		fmt.Println(ui.KeyValueBlock("", [][2]string{
			{"Amount", result.Amount + " USDC"},
			{"Route", result.FromChain + " → " + result.ToChain},
			{"Recipient", ui.Addr(result.Recipient)},
			{"Burn TX", ui.Addr(result.BurnTx)},
			{"Mint TX", ui.Addr(result.MintTx)},
		}))
		return nil
	},
}

func init() {
	bridgeCmd.Flags().StringVarP(&bridgeTo, "to", "t", "", "recipient address or ENS name on the destination chain (required)")
	bridgeCmd.Flags().StringVarP(&bridgeAmount, "amount", "a", "", "amount in USDC (required)")
	bridgeCmd.Flags().StringVarP(&bridgeFromChain, "from-chain", "f", "", "source chain (required)")
	bridgeCmd.Flags().StringVarP(&bridgeToChain, "to-chain", "d", "", "destination chain (required)")
	bridgeCmd.Flags().StringVarP(&bridgeWallet, "wallet", "w", "", "signing wallet name")
	bridgeCmd.Flags().IntVar(&bridgeAttempts, "max-attempts", 30, "attestation poll attempts before giving up")
	bridgeCmd.Flags().DurationVar(&bridgeInterval, "poll-interval", 10*time.Second, "attestation poll interval")
	bridgeCmd.MarkFlagRequired("from-chain") //nolint:errcheck
	bridgeCmd.MarkFlagRequired("to-chain")   //nolint:errcheck
}
