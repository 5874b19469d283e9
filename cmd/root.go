package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/config"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/stablekit/usdcli/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	testnet bool
	mainnet bool
	jsonOut bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "usdcli",
	Short: "USDC balance, transfer and CCTP bridge CLI",
	Long: `usdcli — check USDC balances, send USDC, and bridge it across chains
via Circle's Cross-Chain Transfer Protocol (CCTP).

Global flags --testnet and --mainnet override the configured network mode
for a single invocation. Without either flag the persisted mode is used
(default: testnet). Mainnet transfers require typed confirmation.

A signing key is resolved from, in order: --wallet, the USDC_PRIVATE_KEY
environment variable, the default wallet. Per-chain RPC endpoints can be
overridden with USDC_RPC_<CHAIN> (e.g. USDC_RPC_BASE).`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if testnet {
			cfg.NetworkMode = chain.ModeTestnet
		}
		if mainnet {
			cfg.NetworkMode = chain.ModeMainnet
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// USDCLI_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("USDCLI_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.usdcli)")
	rootCmd.PersistentFlags().BoolVar(&testnet, "testnet", false, "use testnet instead of mainnet")
	rootCmd.PersistentFlags().BoolVar(&mainnet, "mainnet", false, "use mainnet instead of testnet")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "machine-readable JSON output")
	rootCmd.MarkFlagsMutuallyExclusive("testnet", "mainnet")

	rootCmd.AddCommand(
		balanceCmd,
		sendCmd,
		bridgeCmd,
		statusCmd,
		chainsCmd,
		walletCmd,
		configCmd,
	)
}
