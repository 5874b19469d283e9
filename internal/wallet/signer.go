package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs EVM transactions with a resolved private key.
type Signer struct {
	address string
	key     *ecdsa.PrivateKey
}

// NewSignerFromKey builds a signer directly from a hex private key
// (the USDC_PRIVATE_KEY path).
func NewSignerFromKey(hexKey string) (*Signer, error) {
	privKey, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Signer{
		address: crypto.PubkeyToAddress(privKey.PublicKey).Hex(),
		key:     privKey,
	}, nil
}

// NewSignerFromWallet resolves a signing wallet's key from the keystore.
func NewSignerFromWallet(w *Wallet, ks KeySource) (*Signer, error) {
	if w.Type != TypeSigning {
		return nil, fmt.Errorf("wallet %q is watch-only and cannot sign", w.Name)
	}
	hexKey, err := ks.Retrieve(w.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}
	return NewSignerFromKey(hexKey)
}

// Address returns the signer's EVM address.
func (s *Signer) Address() string { return s.address }

// SignTx signs a transaction and returns the raw signed bytes.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	signed, err := types.SignTx(tx, types.NewLondonSigner(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling signed tx: %w", err)
	}
	return raw, nil
}
