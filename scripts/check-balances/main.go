// check-balances: queries the USDC balance for a set of wallets across all
// registry chains (mainnet + testnet) in parallel and prints a summary table.
//
// Run from the module root:
//
//	go run ./scripts/check-balances 0xWALLET [0xWALLET...]
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/token"
)

const rpcTimeout = 12 * time.Second

type result struct {
	chain   string
	mode    string
	wallet  string // short form
	balance string
	err     string
}

func main() {
	wallets := os.Args[1:]
	if len(wallets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check-balances 0xWALLET [0xWALLET...]")
		os.Exit(1)
	}

	reg := chain.NewRegistry()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)

	for _, c := range reg.All() {
		for _, mode := range []string{chain.ModeMainnet, chain.ModeTestnet} {
			c := c
			usdcAddr, err := c.USDC(mode)
			if err != nil {
				continue
			}
			rpcs := c.RPCs(mode)
			if len(rpcs) == 0 {
				continue
			}
			rpcURL := rpcs[0] // first built-in RPC

			for _, wallet := range wallets {
				wg.Add(1)
				go func(mode, rpcURL, usdcAddr, wallet string) {
					defer wg.Done()

					ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
					defer cancel()

					client := chain.NewEVMClient(rpcURL)

					r := result{
						chain:  c.Name,
						mode:   mode,
						wallet: shortAddr(wallet),
					}

					// Quick ping first, skip endpoints that don't respond.
					if _, _, err := client.Ping(ctx); err != nil {
						r.balance = "—"
						r.err = "unreachable"
					} else if raw, err := token.New(client, usdcAddr).BalanceOf(wallet); err != nil {
						r.balance = "—"
						r.err = shortErr(err)
					} else {
						r.balance = token.FormatUnits(raw, 6)
					}

					mu.Lock()
					results = append(results, r)
					mu.Unlock()
				}(mode, rpcURL, usdcAddr, wallet)
			}
		}
	}

	wg.Wait()

	printTable(results)
}

func printTable(results []result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.chain != b.chain {
			return a.chain < b.chain
		}
		if a.mode != b.mode {
			return a.mode < b.mode // mainnet < testnet alphabetically
		}
		return a.wallet < b.wallet
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "CHAIN\tMODE\tWALLET\tUSDC\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 10)+"\t"+
		strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 14)+"\t"+
		strings.Repeat("-", 18)+"\t"+
		strings.Repeat("-", 12))

	lastChain := ""
	for _, r := range results {
		if r.chain != lastChain {
			if lastChain != "" {
				fmt.Fprintln(w, "\t\t\t\t") // blank separator between chains
			}
			lastChain = r.chain
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.chain, r.mode, r.wallet, r.balance, r.err)
	}
	w.Flush()
}

func shortAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}
