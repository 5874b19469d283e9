package chain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ErrNoRPC is returned when no RPC endpoint could be resolved for a chain.
var ErrNoRPC = errors.New("no RPC endpoint available")

// rpcEnvPrefix is the per-chain RPC override, e.g. USDC_RPC_BASE.
const rpcEnvPrefix = "USDC_RPC_"

// ResolveRPC picks the RPC endpoint to use for a chain and mode.
//
// Precedence: USDC_RPC_<CHAIN> env var, then customRPC (from config), then
// the registry defaults. Env/custom endpoints are trusted as-is; registry
// defaults are public rate-limited nodes, so each is pinged and the first
// one that answers wins.
func ResolveRPC(ctx context.Context, c *Chain, mode, customRPC string) (string, error) {
	if url := os.Getenv(rpcEnvPrefix + strings.ToUpper(c.Name)); url != "" {
		return url, nil
	}
	if customRPC != "" {
		return customRPC, nil
	}

	defaults := c.RPCs(mode)
	if len(defaults) == 0 {
		return "", fmt.Errorf("%w for %s (%s)", ErrNoRPC, c.Name, mode)
	}
	if len(defaults) == 1 {
		return defaults[0], nil
	}

	for _, url := range defaults {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, _, err := NewEVMClient(url).Ping(pingCtx)
		cancel()
		if err == nil {
			return url, nil
		}
	}

	// All pings failed; let the caller hit the first default and surface
	// the real transport error.
	return defaults[0], nil
}
