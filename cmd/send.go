package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/token"
	"github.com/stablekit/usdcli/internal/ui"
)

var (
	sendTo     string
	sendAmount string
	sendChain  string
	sendWallet string
)

// SendResult is the machine-readable send output.
type SendResult struct {
	TxHash   string `json:"tx_hash"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
	Chain    string `json:"chain"`
	Testnet  bool   `json:"testnet"`
	Explorer string `json:"explorer,omitempty"`
}

const transferGasFallback = 100_000

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send USDC on one chain",
	Long: `Transfer USDC to another address on the same chain.

Examples:
  usdcli send --to 0xABC... --amount 12.50 --chain base
  usdcli send --to 0xABC... --amount 100 --chain ethereum --mainnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendTo == "" {
			return fmt.Errorf("--to is required")
		}
		if sendAmount == "" {
			return fmt.Errorf("--amount is required")
		}
		recipient, err := resolveRecipient(sendTo)
		if err != nil {
			return err
		}

		c, err := resolveChain(sendChain)
		if err != nil {
			return err
		}
		mode := cfg.NetworkMode

		usdcAddr, err := c.USDC(mode)
		if err != nil {
			return fmt.Errorf("USDC not supported on %s (%s)", c.Name, mode)
		}

		signer, err := resolveSigner(sendWallet)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		client, err := newClient(ctx, c)
		if err != nil {
			return err
		}

		usdc := token.New(client, usdcAddr)
		decimals, err := usdc.Decimals()
		if err != nil {
			return err
		}
		raw, err := token.ParseUnits(sendAmount, decimals)
		if err != nil {
			return err
		}

		if !jsonOut {
			fmt.Println(ui.KeyValueBlock("Transfer Preview", [][2]string{
				{"From", ui.Addr(signer.Address())},
				{"To", ui.Addr(recipient)},
				{"Amount", sendAmount + " USDC"},
				{"Network", c.DisplayName + " (" + mode + ")"},
			}))
		}
		if !confirmMainnet("TRANSACTION") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Broadcasting transaction...")
		spin.Start()
		sender := chain.NewTxSender(client, signer, nil)
		hash, err := sender.Send(usdcAddr, token.TransferCalldata(recipient, raw), transferGasFallback)
		spin.Stop()
		if err != nil {
			return err
		}

		result := &SendResult{
			TxHash:   hash,
			From:     signer.Address(),
			To:       recipient,
			Amount:   sendAmount,
			Chain:    c.NetworkName(mode),
			Testnet:  mode == chain.ModeTestnet,
			Explorer: c.Explorer(mode) + "/tx/" + hash,
		}

		if jsonOut {
			return printJSON(result)
		}

		fmt.Println(ui.Success("USDC sent!"))
		fmt.Println("  " + ui.Addr("Hash: "+hash))
		fmt.Println("  " + ui.Meta(result.Explorer))
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "recipient address or ENS name (required)")
	sendCmd.Flags().StringVarP(&sendAmount, "amount", "a", "", "amount in USDC (required)")
	sendCmd.Flags().StringVarP(&sendChain, "chain", "c", "", "chain (default: config)")
	sendCmd.Flags().StringVarP(&sendWallet, "wallet", "w", "", "signing wallet name")
}
