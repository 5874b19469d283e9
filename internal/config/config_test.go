package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stablekit/usdcli/internal/chain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "base", cfg.DefaultChain)
	assert.Equal(t, chain.ModeTestnet, cfg.NetworkMode)
	assert.Equal(t, 10, cfg.WatchInterval)
	assert.Empty(t, cfg.DefaultWallet)
	assert.NotNil(t, cfg.CustomRPCs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.DefaultChain = "arbitrum"
	cfg.NetworkMode = chain.ModeMainnet
	cfg.DefaultWallet = "hot"
	cfg.SetRPC("base", "http://localhost:8545")
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "arbitrum", loaded.DefaultChain)
	assert.Equal(t, chain.ModeMainnet, loaded.NetworkMode)
	assert.Equal(t, "hot", loaded.DefaultWallet)
	assert.Equal(t, "http://localhost:8545", loaded.RPC("base"))
}

func TestConfigFilePermissions(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUnsetRPC(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg.SetRPC("base", "http://localhost:8545")
	require.NoError(t, cfg.UnsetRPC("base"))
	assert.Empty(t, cfg.RPC("base"))

	assert.Error(t, cfg.UnsetRPC("base"))
}

func TestWalletsPathUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
