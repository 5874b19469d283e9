package token

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/stablekit/usdcli/internal/chain"
	"golang.org/x/crypto/sha3"
)

// Token is an ERC-20 contract bound to an RPC client.
type Token struct {
	client *chain.EVMClient
	addr   string
}

// New binds a token contract address to a client.
func New(client *chain.EVMClient, addr string) *Token {
	return &Token{client: client, addr: addr}
}

// Address returns the token contract address.
func (t *Token) Address() string { return t.addr }

// Decimals reads the token's decimal count from the contract.
func (t *Token) Decimals() (int32, error) {
	result, err := t.client.CallContract(t.addr, Selector("decimals()"))
	if err != nil {
		return 0, fmt.Errorf("reading decimals: %w", err)
	}
	n, ok := parseBigHex(result)
	if !ok {
		return 0, fmt.Errorf("could not parse decimals: %s", result)
	}
	return int32(n.Int64()), nil
}

// BalanceOf returns the raw token balance of owner.
func (t *Token) BalanceOf(owner string) (*big.Int, error) {
	calldata := Selector("balanceOf(address)") + padAddress(owner)
	result, err := t.client.CallContract(t.addr, calldata)
	if err != nil {
		return nil, fmt.Errorf("reading balance: %w", err)
	}
	n, ok := parseBigHex(result)
	if !ok {
		return nil, fmt.Errorf("could not parse balance: %s", result)
	}
	return n, nil
}

// TransferCalldata builds the calldata for transfer(to, amount).
func TransferCalldata(to string, amount *big.Int) []byte {
	return mustHex(Selector("transfer(address,uint256)") + padAddress(to) + padUint(amount))
}

// ApproveCalldata builds the calldata for approve(spender, amount).
func ApproveCalldata(spender string, amount *big.Int) []byte {
	return mustHex(Selector("approve(address,uint256)") + padAddress(spender) + padUint(amount))
}

// --- ABI word encoding (static types only) ---

// Selector computes the 4-byte function selector for a signature,
// as a 0x-prefixed hex string.
func Selector(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// padAddress left-pads an address to a 32-byte hex word.
func padAddress(addr string) string {
	return fmt.Sprintf("%064s", strings.ToLower(strings.TrimPrefix(addr, "0x")))
}

// padUint encodes a non-negative integer as a 32-byte hex word.
func padUint(n *big.Int) string {
	return fmt.Sprintf("%064s", n.Text(16))
}

func parseBigHex(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), true
	}
	return new(big.Int).SetString(s, 16)
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(fmt.Sprintf("bad calldata hex: %v", err))
	}
	return b
}
