package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/ui"
)

var walletKey string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet (watch-only by address, or signing with --key)",
	Long: `Add a wallet. With an address argument a watch-only wallet is stored.
With --key the private key is stored in the OS keychain and the address is
derived from it.

Examples:
  usdcli wallet add treasury 0xABC...
  usdcli wallet add hot --key 0xPRIVATEKEY...`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := walletManager()

		if walletKey != "" {
			if err := mgr.AddSigning(name, walletKey); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added (%s)", name, w.Address)))
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("an address is required for a watch-only wallet (or pass --key)")
		}
		if !isHexAddress(args[1]) {
			return fmt.Errorf("invalid address %q", args[1])
		}
		if err := mgr.AddWatchOnly(name, args[1]); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added", name)))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, err := walletManager().List()
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(wallets)
		}
		if len(wallets) == 0 {
			fmt.Println(ui.Meta("No wallets. Add one with `usdcli wallet add`."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Type", Width: 12},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address, w.Type, def})
		}
		fmt.Print(t.Render())
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := walletManager()
		if err := mgr.SetDefault(args[0]); err != nil {
			return err
		}
		cfg.DefaultWallet = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q", args[0])))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet (and its stored key, if any)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := walletManager().Remove(args[0]); err != nil {
			return err
		}
		if cfg.DefaultWallet == args[0] {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed", args[0])))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKey, "key", "", "hex private key (stored in the OS keychain)")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}
