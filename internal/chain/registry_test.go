package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetByName(t *testing.T) {
	reg := NewRegistry()

	c, err := reg.GetByName("base")
	require.NoError(t, err)
	assert.Equal(t, "base", c.Name)
	assert.Equal(t, int64(8453), c.ChainID)
}

func TestRegistryGetByNameCaseInsensitive(t *testing.T) {
	reg := NewRegistry()

	c, err := reg.GetByName("Ethereum")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", c.Name)
}

func TestRegistryUnknownChain(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.GetByName("dogecoin")
	assert.ErrorIs(t, err, ErrChainNotFound)
}

func TestRegistryDomainIDs(t *testing.T) {
	reg := NewRegistry()

	expected := map[string]uint32{
		"ethereum": 0,
		"arbitrum": 3,
		"base":     6,
		"polygon":  7,
	}
	for name, want := range expected {
		c, err := reg.GetByName(name)
		require.NoError(t, err)
		domain, err := c.CCTPDomain()
		require.NoError(t, err)
		assert.Equal(t, want, domain, "domain for %s", name)
	}
}

func TestRegistryUSDCPerMode(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.GetByName("base")
	require.NoError(t, err)

	mainAddr, err := c.USDC(ModeMainnet)
	require.NoError(t, err)
	testAddr, err := c.USDC(ModeTestnet)
	require.NoError(t, err)

	assert.Equal(t, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", mainAddr)
	assert.Equal(t, "0x036CbD53842c5426634e7929541eC2318f3dCF7e", testAddr)
	assert.NotEqual(t, mainAddr, testAddr)
}

// Every table consulted by a flow must answer consistently for a given
// (chain, mode) pair: whenever SupportsBridge reports true, every individual
// lookup must also succeed, and vice versa.
func TestRegistryBridgeTablesConsistent(t *testing.T) {
	reg := NewRegistry()

	for _, c := range reg.All() {
		for _, mode := range []string{ModeMainnet, ModeTestnet} {
			_, usdcErr := c.USDC(mode)
			_, tmErr := c.TokenMessenger(mode)
			_, mtErr := c.MessageTransmitter(mode)
			_, domErr := c.CCTPDomain()

			allPresent := usdcErr == nil && tmErr == nil && mtErr == nil && domErr == nil
			assert.Equal(t, allPresent, c.SupportsBridge(mode),
				"bridge support mismatch for %s (%s)", c.Name, mode)
		}
	}
}

func TestRegistryPolygonTestnetBridgeUnsupported(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.GetByName("polygon")
	require.NoError(t, err)

	assert.True(t, c.SupportsBridge(ModeMainnet))
	assert.False(t, c.SupportsBridge(ModeTestnet))

	_, err = c.TokenMessenger(ModeTestnet)
	assert.ErrorIs(t, err, ErrCCTPNotSupported)
}

func TestRegistryPolygonTestnetIsAmoy(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.GetByName("polygon")
	require.NoError(t, err)

	// USDC on Polygon's testnet lives on Amoy; every other field of the
	// testnet variant has to agree with that network.
	assert.Equal(t, int64(80002), c.NumericChainID(ModeTestnet))
	assert.Equal(t, "polygon_amoy", c.NetworkName(ModeTestnet))

	usdc, err := c.USDC(ModeTestnet)
	require.NoError(t, err)
	assert.Equal(t, "0x9999f7Fea5938fD3b1E26A12c3f2fb024e194f97", usdc)

	for _, rpc := range c.RPCs(ModeTestnet) {
		assert.Contains(t, rpc, "amoy", "testnet RPC %s", rpc)
	}
	assert.Contains(t, c.Explorer(ModeTestnet), "amoy")
}

func TestRegistryEveryChainHasRPCsAndExplorers(t *testing.T) {
	reg := NewRegistry()

	for _, c := range reg.All() {
		for _, mode := range []string{ModeMainnet, ModeTestnet} {
			assert.NotEmpty(t, c.RPCs(mode), "RPCs for %s (%s)", c.Name, mode)
			assert.NotEmpty(t, c.Explorer(mode), "explorer for %s (%s)", c.Name, mode)
			assert.NotZero(t, c.NumericChainID(mode), "chain id for %s (%s)", c.Name, mode)
		}
	}
}

func TestNetworkName(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.GetByName("arbitrum")
	require.NoError(t, err)

	assert.Equal(t, "arbitrum", c.NetworkName(ModeMainnet))
	assert.Equal(t, "arbitrum_sepolia", c.NetworkName(ModeTestnet))
}
