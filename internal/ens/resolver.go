// Package ens resolves ENS names to addresses so commands can take
// "alice.eth" wherever they take a recipient address.
package ens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stablekit/usdcli/internal/chain"
)

// ENS registry, deployed at the same address on Ethereum mainnet and Sepolia.
const registryAddr = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

// Function selectors.
const (
	selResolver = "0x0178b8bf" // resolver(bytes32)
	selAddr     = "0x3b3b57de" // addr(bytes32)
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

// IsName reports whether s looks like an ENS name rather than a hex address.
func IsName(s string) bool {
	return strings.Contains(s, ".") && !strings.HasPrefix(s, "0x")
}

// Resolve looks up the address for an ENS name: the registry names the
// resolver contract, the resolver answers addr(namehash). client must point
// at an Ethereum RPC, since that is where the registry lives.
func Resolve(client *chain.EVMClient, name string) (string, error) {
	node := Namehash(name)

	resolverWord, err := client.CallContract(registryAddr, selResolver+node)
	if err != nil {
		return "", fmt.Errorf("querying ENS registry: %w", err)
	}
	resolverAddr, ok := wordToAddress(resolverWord)
	if !ok {
		return "", fmt.Errorf("no resolver set for %q", name)
	}

	addrWord, err := client.CallContract(resolverAddr, selAddr+node)
	if err != nil {
		return "", fmt.Errorf("querying ENS resolver: %w", err)
	}
	addr, ok := wordToAddress(addrWord)
	if !ok {
		return "", fmt.Errorf("no address record for %q", name)
	}
	return addr, nil
}

// Namehash implements the EIP-137 hash: labels are keccak-folded
// right to left onto a zero node.
func Namehash(name string) string {
	node := make([]byte, 32)
	if name == "" {
		return fmt.Sprintf("%064x", node)
	}

	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256(append(node, labelHash...))
	}
	return fmt.Sprintf("%064x", node)
}

// wordToAddress extracts the address from a 32-byte ABI return word.
// ok is false for short results and for the zero address.
func wordToAddress(word string) (string, bool) {
	clean := strings.TrimPrefix(word, "0x")
	if len(clean) < 64 {
		return "", false
	}
	addr := "0x" + clean[24:64]
	if addr == zeroAddress {
		return "", false
	}
	return addr, true
}
