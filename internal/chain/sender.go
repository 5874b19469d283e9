package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxSigner signs transactions for a sender address.
type TxSigner interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// TxSender builds, signs and broadcasts contract-call transactions.
type TxSender struct {
	client  *EVMClient
	signer  TxSigner
	chainID *big.Int
}

// NewTxSender creates a TxSender. chainID may be nil, in which case it is
// fetched from the node on first use.
func NewTxSender(client *EVMClient, signer TxSigner, chainID *big.Int) *TxSender {
	return &TxSender{client: client, signer: signer, chainID: chainID}
}

// From returns the sending address.
func (s *TxSender) From() string { return s.signer.Address() }

// Send packs calldata into an EIP-1559 transaction to contractAddr, signs it
// and broadcasts it. gasFallback is used when estimation fails (contract
// calls against not-yet-approved state commonly fail estimation).
func (s *TxSender) Send(contractAddr string, calldata []byte, gasFallback uint64) (string, error) {
	if s.chainID == nil {
		id, err := s.client.ChainID()
		if err != nil {
			return "", fmt.Errorf("getting chain id: %w", err)
		}
		s.chainID = id
	}

	from := s.signer.Address()
	dataHex := "0x" + hex.EncodeToString(calldata)

	gas, err := s.client.EstimateGas(from, contractAddr, dataHex, nil)
	if err != nil {
		gas = gasFallback
	}

	gasPrice, err := s.client.GasPrice()
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetNonce(from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	toAddr := common.HexToAddress(contractAddr)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     big.NewInt(0),
		Data:      calldata,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.client.SendRawTransaction("0x" + hex.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	if !strings.HasPrefix(hash, "0x") {
		hash = "0x" + hash
	}
	return hash, nil
}
