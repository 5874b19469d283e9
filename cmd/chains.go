package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/ui"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported chains and CCTP bridging support",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		mode := cfg.NetworkMode

		if jsonOut {
			return printJSON(reg.All())
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Chain", Width: 12},
			{Title: "Network", Width: 18},
			{Title: "Chain ID", Width: 10},
			{Title: "Domain", Width: 7},
			{Title: "USDC", Width: 44},
			{Title: "Bridge", Width: 7},
		})

		for _, c := range reg.All() {
			usdcAddr, err := c.USDC(mode)
			if err != nil {
				usdcAddr = "—"
			}
			bridge := "no"
			if c.SupportsBridge(mode) {
				bridge = "yes"
			}
			domain := "—"
			if c.HasDomain {
				domain = fmt.Sprintf("%d", c.Domain)
			}
			t.AddRow(ui.Row{
				c.Name,
				c.NetworkName(mode),
				fmt.Sprintf("%d", c.NumericChainID(mode)),
				domain,
				usdcAddr,
				bridge,
			})
		}

		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Supported chains (%s)", mode)))
		fmt.Print(t.Render())
		return nil
	},
}
