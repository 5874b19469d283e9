package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/ens"
	"github.com/stablekit/usdcli/internal/ui"
	"github.com/stablekit/usdcli/internal/wallet"
)

// envPrivateKey holds a hex signing key; it outranks the default wallet but
// not an explicit --wallet flag.
const envPrivateKey = "USDC_PRIVATE_KEY"

// resolveChain looks up a chain by flag value, falling back to the config default.
func resolveChain(name string) (*chain.Chain, error) {
	if name == "" {
		name = cfg.DefaultChain
	}
	c, err := chain.NewRegistry().GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("unknown chain %q — run `usdcli chains` to see supported chains", name)
	}
	return c, nil
}

// newClient resolves the RPC endpoint for a chain (env override, then config
// custom RPC, then registry defaults) and returns a client against it.
func newClient(ctx context.Context, c *chain.Chain) (*chain.EVMClient, error) {
	rpcURL, err := chain.ResolveRPC(ctx, c, cfg.NetworkMode, cfg.RPC(c.Name))
	if err != nil {
		return nil, err
	}
	return chain.NewEVMClient(rpcURL), nil
}

// walletManager returns the manager over the configured wallet store.
func walletManager() *wallet.Manager {
	return wallet.NewManager(wallet.NewJSONStore(cfg.WalletsPath()), wallet.DefaultKeystore())
}

// resolveSigner finds a signing key: the named wallet if given, otherwise
// USDC_PRIVATE_KEY, otherwise the default wallet.
func resolveSigner(walletName string) (*wallet.Signer, error) {
	mgr := walletManager()

	if walletName != "" {
		w, err := mgr.Get(walletName)
		if err != nil {
			return nil, fmt.Errorf("wallet %q not found — run `usdcli wallet list`", walletName)
		}
		return wallet.NewSignerFromWallet(w, wallet.DefaultKeystore())
	}

	if hexKey := os.Getenv(envPrivateKey); hexKey != "" {
		return wallet.NewSignerFromKey(hexKey)
	}

	if name := cfg.DefaultWallet; name != "" {
		if w, err := mgr.Get(name); err == nil {
			return wallet.NewSignerFromWallet(w, wallet.DefaultKeystore())
		}
	}
	if w := mgr.Default(); w != nil {
		return wallet.NewSignerFromWallet(w, wallet.DefaultKeystore())
	}

	return nil, fmt.Errorf("no signing key — set %s, or add a wallet:\n  usdcli wallet add mywallet --key 0x...", envPrivateKey)
}

// resolveAddress turns a positional argument into an address: a 0x literal
// passes through, an ENS name is resolved on-chain, anything else is treated
// as a wallet name. An empty argument falls back to the default wallet.
func resolveAddress(arg string) (string, error) {
	if isHexAddress(arg) {
		return arg, nil
	}
	if ens.IsName(arg) {
		return resolveENS(arg)
	}

	mgr := walletManager()
	if arg != "" {
		w, err := mgr.Get(arg)
		if err != nil {
			return "", fmt.Errorf("wallet %q not found — run `usdcli wallet list`, or pass an address directly", arg)
		}
		return w.Address, nil
	}

	if name := cfg.DefaultWallet; name != "" {
		if w, err := mgr.Get(name); err == nil {
			return w.Address, nil
		}
	}
	if w := mgr.Default(); w != nil {
		return w.Address, nil
	}
	return "", fmt.Errorf("no address given — pass one, or set a default:\n  usdcli wallet add mywallet 0x...\n  usdcli wallet use mywallet")
}

// resolveRecipient accepts a hex address or an ENS name.
func resolveRecipient(arg string) (string, error) {
	if isHexAddress(arg) {
		return arg, nil
	}
	if ens.IsName(arg) {
		return resolveENS(arg)
	}
	return "", fmt.Errorf("invalid recipient %q — pass a 0x address or an ENS name", arg)
}

// resolveENS resolves a name against Ethereum in the current mode; the ENS
// registry only exists there.
func resolveENS(name string) (string, error) {
	eth, err := chain.NewRegistry().GetByName("ethereum")
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := newClient(ctx, eth)
	if err != nil {
		return "", err
	}
	addr, err := ens.Resolve(client, name)
	if err != nil {
		return "", err
	}
	fmt.Println(ui.Meta(fmt.Sprintf("%s → %s", name, addr)))
	return addr, nil
}

func isHexAddress(s string) bool {
	return (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) && common.IsHexAddress(s)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// confirmMainnet gates mainnet value transfers behind a typed confirmation.
func confirmMainnet(action string) bool {
	if cfg.NetworkMode != chain.ModeMainnet {
		return true
	}
	return ui.ConfirmDanger(fmt.Sprintf("MAINNET %s!", action))
}
