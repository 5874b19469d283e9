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
	statusFromChain string
	statusToChain   string
	statusWallet    string
	statusComplete  bool
)

// StatusResult is the machine-readable status output.
type StatusResult struct {
	BurnTx      string `json:"burn_tx"`
	MessageHash string `json:"message_hash"`
	Status      string `json:"status"`
	MintTx      string `json:"mint_tx,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status <burn-tx-hash>",
	Short: "Check a pending bridge, optionally completing the mint",
	Long: `Inspect the attestation state of a CCTP burn transaction. With
--complete, a complete attestation is submitted to the destination chain's
MessageTransmitter to mint the USDC.

Examples:
  usdcli status 0xBURNTX... --from-chain base --to-chain arbitrum
  usdcli status 0xBURNTX... --from-chain base --to-chain arbitrum --complete`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		burnTx := args[0]

		src, err := resolveChain(statusFromChain)
		if err != nil {
			return err
		}
		dst, err := resolveChain(statusToChain)
		if err != nil {
			return err
		}
		mode := cfg.NetworkMode

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		srcClient, err := newClient(ctx, src)
		if err != nil {
			return err
		}
		dstClient, err := newClient(ctx, dst)
		if err != nil {
			return err
		}

		// The signer is only needed to mint.
		var bridger *cctp.Bridger
		if statusComplete {
			signer, err := resolveSigner(statusWallet)
			if err != nil {
				return err
			}
			bridger = cctp.NewBridger(src, dst, mode, srcClient, dstClient, signer)
		} else {
			bridger = cctp.NewBridger(src, dst, mode, srcClient, dstClient, nil)
		}

		spin := ui.NewSpinner("Recovering message from burn transaction...")
		spin.Start()
		message, messageHash, err := bridger.RecoverMessage(burnTx)
		if err != nil {
			spin.Stop()
			return err
		}
		att, err := bridger.CheckAttestation(ctx, messageHash)
		spin.Stop()
		if err != nil {
			return err
		}

		result := &StatusResult{
			BurnTx:      burnTx,
			MessageHash: messageHash,
			Status:      att.Status,
		}

		if att.Status == cctp.StatusComplete && statusComplete {
			spin = ui.NewSpinner(fmt.Sprintf("Minting USDC on %s...", dst.DisplayName))
			spin.Start()
			mintTx, err := bridger.Mint(ctx, message, att.Attestation)
			spin.Stop()
			if err != nil {
				return err
			}
			result.MintTx = mintTx
		}

		if jsonOut {
			return printJSON(result)
		}

		pairs := [][2]string{
			{"Burn TX", ui.Addr(result.BurnTx)},
			{"Message Hash", ui.Addr(result.MessageHash)},
			{"Attestation", result.Status},
		}
		if result.MintTx != "" {
			pairs = append(pairs, [2]string{"Mint TX", ui.Addr(result.MintTx)})
		}
		fmt.Println(ui.KeyValueBlock("Bridge Status", pairs))

		switch {
		case result.MintTx != "":
			fmt.Println(ui.Success("Bridge complete!"))
		case result.Status == cctp.StatusComplete:
			fmt.Println(ui.Hint("Attestation ready — re-run with --complete to mint."))
		default:
			fmt.Println(ui.Hint("Attestation pending — try again in a few minutes."))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusFromChain, "from-chain", "f", "", "source chain of the burn (required)")
	statusCmd.Flags().StringVarP(&statusToChain, "to-chain", "d", "", "destination chain (required)")
	statusCmd.Flags().StringVarP(&statusWallet, "wallet", "w", "", "signing wallet name")
	statusCmd.Flags().BoolVar(&statusComplete, "complete", false, "submit the mint when the attestation is ready")
	statusCmd.MarkFlagRequired("from-chain") //nolint:errcheck
	statusCmd.MarkFlagRequired("to-chain")   //nolint:errcheck
}
