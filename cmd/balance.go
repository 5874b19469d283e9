package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/price"
	"github.com/stablekit/usdcli/internal/token"
	"github.com/stablekit/usdcli/internal/ui"
)

var (
	balanceChain string
	balanceLive  bool
	balanceUSD   bool
)

// BalanceResult is the machine-readable balance output.
type BalanceResult struct {
	Address    string `json:"address"`
	Chain      string `json:"chain"`
	Testnet    bool   `json:"testnet"`
	Balance    string `json:"balance"`
	BalanceRaw string `json:"balance_raw"`
	Decimals   int32  `json:"decimals"`
	Contract   string `json:"usdc_contract"`
	USDPrice   string `json:"usd_price,omitempty"`
	USDValue   string `json:"usd_value,omitempty"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance [wallet-name-or-address]",
	Short: "Check a USDC balance",
	Long: `Check the USDC balance of an address on one chain.

Examples:
  usdcli balance 0xABC...                       # default chain + mode
  usdcli balance --chain ethereum --mainnet
  usdcli balance mywallet --chain arbitrum
  usdcli balance 0xABC... --live                # refresh across all chains`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		address, err := resolveAddress(arg)
		if err != nil {
			return err
		}

		if balanceLive {
			return runLiveBalances(address)
		}

		c, err := resolveChain(balanceChain)
		if err != nil {
			return err
		}
		return fetchAndPrintBalance(address, c)
	},
}

func fetchAndPrintBalance(address string, c *chain.Chain) error {
	mode := cfg.NetworkMode

	usdcAddr, err := c.USDC(mode)
	if err != nil {
		return fmt.Errorf("USDC not supported on %s (%s)", c.Name, mode)
	}

	spin := ui.NewSpinner(fmt.Sprintf("Fetching USDC balance on %s (%s)...", c.DisplayName, mode))
	spin.Start()

	result, err := fetchBalance(address, c, usdcAddr)
	spin.Stop()
	if err != nil {
		return err
	}

	if balanceUSD {
		if err := attachUSDValue(result); err != nil {
			fmt.Println(ui.Meta("USD price unavailable: " + err.Error()))
		}
	}

	if jsonOut {
		return printJSON(result)
	}

	pairs := [][2]string{
		{"Address", ui.Addr(address)},
		{"Balance", result.Balance + " USDC"},
		{"Contract", ui.Addr(usdcAddr)},
	}
	if result.USDValue != "" {
		pairs = append(pairs,
			[2]string{"USD value", "$" + result.USDValue},
			[2]string{"USDC price", "$" + result.USDPrice},
		)
	}
	fmt.Println(ui.KeyValueBlock(
		fmt.Sprintf("USDC Balance on %s (%s)", c.DisplayName, mode), pairs))
	return nil
}

// attachUSDValue marks the balance to market using the live USDC price.
func attachUSDValue(r *BalanceResult) error {
	p, err := price.NewFetcher().USDCPrice()
	if err != nil {
		return err
	}
	bal, err := decimal.NewFromString(r.Balance)
	if err != nil {
		return err
	}
	r.USDPrice = decimal.NewFromFloat(p).String()
	r.USDValue = bal.Mul(decimal.NewFromFloat(p)).Round(2).String()
	return nil
}

func fetchBalance(address string, c *chain.Chain, usdcAddr string) (*BalanceResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := newClient(ctx, c)
	if err != nil {
		return nil, err
	}

	usdc := token.New(client, usdcAddr)
	decimals, err := usdc.Decimals()
	if err != nil {
		return nil, err
	}
	raw, err := usdc.BalanceOf(address)
	if err != nil {
		return nil, err
	}

	return &BalanceResult{
		Address:    address,
		Chain:      c.NetworkName(cfg.NetworkMode),
		Testnet:    cfg.NetworkMode == chain.ModeTestnet,
		Balance:    token.FormatUnits(raw, decimals),
		BalanceRaw: raw.String(),
		Decimals:   decimals,
		Contract:   usdcAddr,
	}, nil
}

// runLiveBalances opens the refreshing dashboard across every chain that has
// a USDC deployment in the current mode.
func runLiveBalances(address string) error {
	mode := cfg.NetworkMode
	reg := chain.NewRegistry()

	fetcher := func() ([]ui.BalanceEntry, error) {
		var entries []ui.BalanceEntry
		for _, c := range reg.All() {
			c := c
			usdcAddr, err := c.USDC(mode)
			if err != nil {
				continue
			}
			entry := ui.BalanceEntry{
				Chain:   c.NetworkName(mode),
				Address: address,
			}
			result, err := fetchBalance(address, &c, usdcAddr)
			if err != nil {
				entry.Err = err.Error()
			} else {
				entry.Balance = result.Balance
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	prog := ui.NewDashboard(time.Duration(cfg.WatchInterval)*time.Second, fetcher)
	_, err := prog.Run()
	return err
}

func init() {
	balanceCmd.Flags().StringVarP(&balanceChain, "chain", "c", "", "chain to query (default: config)")
	balanceCmd.Flags().BoolVar(&balanceLive, "live", false, "live refresh across all chains")
	balanceCmd.Flags().BoolVar(&balanceUSD, "usd", false, "show the balance marked to the live USDC price")
}
