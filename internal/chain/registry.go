package chain

import (
	"errors"
	"strings"
)

// Registry errors.
var (
	ErrChainNotFound    = errors.New("chain not found")
	ErrNotSupported     = errors.New("USDC not deployed on this chain/mode")
	ErrCCTPNotSupported = errors.New("CCTP bridging not supported on this chain/mode")
)

// Network modes.
const (
	ModeMainnet = "mainnet"
	ModeTestnet = "testnet"
)

// Chain holds all per-chain constants: USDC deployment, CCTP contracts,
// default RPCs and explorers, for both network modes. An empty address field
// means the contract does not exist in that mode.
type Chain struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	ChainID        int64  `json:"chain_id"`
	TestnetChainID int64  `json:"testnet_chain_id"`
	TestnetName    string `json:"testnet_name"`

	MainnetUSDC string `json:"mainnet_usdc"`
	TestnetUSDC string `json:"testnet_usdc"`

	// CCTP v1 contracts. Domain is Circle's chain identifier and is the
	// same for mainnet and testnet.
	Domain                    uint32 `json:"cctp_domain"`
	HasDomain                 bool   `json:"has_cctp_domain"`
	MainnetTokenMessenger     string `json:"mainnet_token_messenger,omitempty"`
	TestnetTokenMessenger     string `json:"testnet_token_messenger,omitempty"`
	MainnetMessageTransmitter string `json:"mainnet_message_transmitter,omitempty"`
	TestnetMessageTransmitter string `json:"testnet_message_transmitter,omitempty"`

	MainnetRPCs     []string `json:"mainnet_rpcs"`
	TestnetRPCs     []string `json:"testnet_rpcs"`
	MainnetExplorer string   `json:"mainnet_explorer"`
	TestnetExplorer string   `json:"testnet_explorer"`
}

// Registry is the immutable chain registry.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
}

// NewRegistry returns the registry of all USDC chains.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
	}
	for i := range r.chains {
		r.byName[r.chains[i].Name] = &r.chains[i]
	}
	return r
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "base", "ethereum").
func (r *Registry) GetByName(name string) (*Chain, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// USDC returns the USDC contract address for the given mode, or
// ErrNotSupported when USDC is not deployed there.
func (c *Chain) USDC(mode string) (string, error) {
	addr := c.MainnetUSDC
	if mode == ModeTestnet {
		addr = c.TestnetUSDC
	}
	if addr == "" {
		return "", ErrNotSupported
	}
	return addr, nil
}

// TokenMessenger returns the CCTP TokenMessenger address for the given mode.
func (c *Chain) TokenMessenger(mode string) (string, error) {
	addr := c.MainnetTokenMessenger
	if mode == ModeTestnet {
		addr = c.TestnetTokenMessenger
	}
	if addr == "" {
		return "", ErrCCTPNotSupported
	}
	return addr, nil
}

// MessageTransmitter returns the CCTP MessageTransmitter address for the given mode.
func (c *Chain) MessageTransmitter(mode string) (string, error) {
	addr := c.MainnetMessageTransmitter
	if mode == ModeTestnet {
		addr = c.TestnetMessageTransmitter
	}
	if addr == "" {
		return "", ErrCCTPNotSupported
	}
	return addr, nil
}

// CCTPDomain returns Circle's domain identifier for this chain.
func (c *Chain) CCTPDomain() (uint32, error) {
	if !c.HasDomain {
		return 0, ErrCCTPNotSupported
	}
	return c.Domain, nil
}

// SupportsBridge reports whether every table needed for bridging (USDC,
// TokenMessenger, MessageTransmitter, domain) has an entry for the mode.
func (c *Chain) SupportsBridge(mode string) bool {
	if _, err := c.USDC(mode); err != nil {
		return false
	}
	if _, err := c.TokenMessenger(mode); err != nil {
		return false
	}
	if _, err := c.MessageTransmitter(mode); err != nil {
		return false
	}
	return c.HasDomain
}

// RPCs returns the default RPC list for a mode.
func (c *Chain) RPCs(mode string) []string {
	if mode == ModeTestnet {
		return c.TestnetRPCs
	}
	return c.MainnetRPCs
}

// Explorer returns the block explorer base URL for a mode.
func (c *Chain) Explorer(mode string) string {
	if mode == ModeTestnet {
		return c.TestnetExplorer
	}
	return c.MainnetExplorer
}

// NetworkName returns the chain name qualified by mode,
// e.g. "base" vs "base_sepolia".
func (c *Chain) NetworkName(mode string) string {
	if mode == ModeTestnet && c.TestnetName != "" {
		return c.TestnetName
	}
	return c.Name
}

// NumericChainID returns the EVM chain ID for a mode.
func (c *Chain) NumericChainID(mode string) int64 {
	if mode == ModeTestnet {
		return c.TestnetChainID
	}
	return c.ChainID
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{
			Name: "ethereum", DisplayName: "Ethereum",
			ChainID: 1, TestnetChainID: 11155111, TestnetName: "ethereum_sepolia",
			MainnetUSDC: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			TestnetUSDC: "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			Domain:      0, HasDomain: true,
			MainnetTokenMessenger:     "0xBd3fa81B58Ba92a82136038B25aDec7066af3155",
			TestnetTokenMessenger:     "0x9f3B8679c73C2Fef8b59B4f3444d4e156fb70AA5",
			MainnetMessageTransmitter: "0x0a992d191DEeC32aFe36203Ad87D7d289a738F81",
			TestnetMessageTransmitter: "0x7865fAfC2db2093669d92c0F33AeEF291086BEFD",
			MainnetRPCs: []string{
				"https://eth.llamarpc.com",
				"https://ethereum-rpc.publicnode.com",
			},
			TestnetRPCs: []string{
				"https://ethereum-sepolia-rpc.publicnode.com",
			},
			MainnetExplorer: "https://etherscan.io",
			TestnetExplorer: "https://sepolia.etherscan.io",
		},
		{
			Name: "base", DisplayName: "Base",
			ChainID: 8453, TestnetChainID: 84532, TestnetName: "base_sepolia",
			MainnetUSDC: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
			TestnetUSDC: "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
			Domain:      6, HasDomain: true,
			MainnetTokenMessenger:     "0x1682Ae6375C4E4A97e4B583BC394c861A46D8962",
			TestnetTokenMessenger:     "0x9f3B8679c73C2Fef8b59B4f3444d4e156fb70AA5",
			MainnetMessageTransmitter: "0xAD09780d193884d503182aD4588450C416D6F9D4",
			TestnetMessageTransmitter: "0x7865fAfC2db2093669d92c0F33AeEF291086BEFD",
			MainnetRPCs: []string{
				"https://base.llamarpc.com",
				"https://base-rpc.publicnode.com",
			},
			TestnetRPCs: []string{
				"https://base-sepolia-rpc.publicnode.com",
			},
			MainnetExplorer: "https://basescan.org",
			TestnetExplorer: "https://sepolia.basescan.org",
		},
		{
			Name: "polygon", DisplayName: "Polygon",
			ChainID: 137, TestnetChainID: 80002, TestnetName: "polygon_amoy",
			MainnetUSDC: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
			TestnetUSDC: "0x9999f7Fea5938fD3b1E26A12c3f2fb024e194f97",
			Domain:      7, HasDomain: true,
			// CCTP contracts are mainnet-only on Polygon PoS.
			MainnetTokenMessenger:     "0x9daF8c91AEFAE50b9c0E69629D3F6Ca40cA3B3FE",
			MainnetMessageTransmitter: "0xF3be9355363857F3e001be68856A2f96b4C39Ba9",
			MainnetRPCs: []string{
				"https://polygon.llamarpc.com",
				"https://polygon-bor-rpc.publicnode.com",
			},
			TestnetRPCs: []string{
				"https://polygon-amoy-bor-rpc.publicnode.com",
			},
			MainnetExplorer: "https://polygonscan.com",
			TestnetExplorer: "https://amoy.polygonscan.com",
		},
		{
			Name: "arbitrum", DisplayName: "Arbitrum One",
			ChainID: 42161, TestnetChainID: 421614, TestnetName: "arbitrum_sepolia",
			MainnetUSDC: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
			TestnetUSDC: "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
			Domain:      3, HasDomain: true,
			MainnetTokenMessenger:     "0x19330d10D9Cc8751218eaf51E8885D058642E08A",
			TestnetTokenMessenger:     "0x9f3B8679c73C2Fef8b59B4f3444d4e156fb70AA5",
			MainnetMessageTransmitter: "0xC30362313FBBA5cf9163F0bb16a0e01f01A896ca",
			TestnetMessageTransmitter: "0x7865fAfC2db2093669d92c0F33AeEF291086BEFD",
			MainnetRPCs: []string{
				"https://arbitrum.llamarpc.com",
				"https://arbitrum-one-rpc.publicnode.com",
			},
			TestnetRPCs: []string{
				"https://arbitrum-sepolia-rpc.publicnode.com",
			},
			MainnetExplorer: "https://arbiscan.io",
			TestnetExplorer: "https://sepolia.arbiscan.io",
		},
	}
}
