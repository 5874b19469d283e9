package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stablekit/usdcli/internal/chain"
)

const (
	defaultChain    = "base"
	defaultMode     = chain.ModeTestnet
	defaultInterval = 10

	configFile  = "config.json"
	walletsFile = "wallets.json"
)

// Config holds all usdcli configuration.
type Config struct {
	DefaultChain  string            `json:"default_chain"`
	DefaultWallet string            `json:"default_wallet"`
	NetworkMode   string            `json:"network_mode"`   // "mainnet" | "testnet"
	WatchInterval int               `json:"watch_interval"` // seconds, for balance --live
	CustomRPCs    map[string]string `json:"custom_rpcs"`    // chain name -> RPC URL

	// config dir path used for Save()
	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.usdcli.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".usdcli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string]string)
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// SetRPC records a custom RPC URL for a chain.
func (c *Config) SetRPC(chainName, url string) {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string]string)
	}
	c.CustomRPCs[chainName] = url
}

// UnsetRPC removes the custom RPC for a chain.
func (c *Config) UnsetRPC(chainName string) error {
	if _, ok := c.CustomRPCs[chainName]; !ok {
		return fmt.Errorf("no custom RPC configured for chain %s", chainName)
	}
	delete(c.CustomRPCs, chainName)
	return nil
}

// RPC returns the custom RPC for a chain, or "" if none is set.
func (c *Config) RPC(chainName string) string {
	return c.CustomRPCs[chainName]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of the wallet store file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

func defaults(dir string) *Config {
	return &Config{
		DefaultChain:  defaultChain,
		NetworkMode:   defaultMode,
		WatchInterval: defaultInterval,
		CustomRPCs:    make(map[string]string),
		configDir:     dir,
	}
}
