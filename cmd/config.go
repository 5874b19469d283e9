package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOut {
			return printJSON(cfg)
		}
		pairs := [][2]string{
			{"Default chain", cfg.DefaultChain},
			{"Network mode", cfg.NetworkMode},
			{"Default wallet", orDash(cfg.DefaultWallet)},
			{"Watch interval", fmt.Sprintf("%ds", cfg.WatchInterval)},
		}
		for name, url := range cfg.CustomRPCs {
			pairs = append(pairs, [2]string{"RPC " + name, url})
		}
		fmt.Println(ui.KeyValueBlock("Configuration", pairs))
		fmt.Println(ui.Meta("Config dir: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (default-chain, network-mode, default-wallet, watch-interval)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		switch key {
		case "default-chain":
			if _, err := chain.NewRegistry().GetByName(value); err != nil {
				return fmt.Errorf("unknown chain %q — run `usdcli chains`", value)
			}
			cfg.DefaultChain = value
		case "network-mode":
			if value != chain.ModeMainnet && value != chain.ModeTestnet {
				return fmt.Errorf("network-mode must be %q or %q", chain.ModeMainnet, chain.ModeTestnet)
			}
			cfg.NetworkMode = value
		case "default-wallet":
			if _, err := walletManager().Get(value); err != nil {
				return fmt.Errorf("wallet %q not found — run `usdcli wallet list`", value)
			}
			cfg.DefaultWallet = value
		case "watch-interval":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("watch-interval must be a positive number of seconds")
			}
			cfg.WatchInterval = n
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s = %s", key, value)))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <chain> <url>",
	Short: "Set a custom RPC endpoint for a chain",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := chain.NewRegistry().GetByName(args[0]); err != nil {
			return fmt.Errorf("unknown chain %q — run `usdcli chains`", args[0])
		}
		cfg.SetRPC(args[0], args[1])
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC for %s set to %s", args[0], args[1])))
		return nil
	},
}

var configUnsetRPCCmd = &cobra.Command{
	Use:   "unset-rpc <chain>",
	Short: "Remove the custom RPC endpoint for a chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.UnsetRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Custom RPC for %s removed", args[0])))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configSetRPCCmd, configUnsetRPCCmd)
}
