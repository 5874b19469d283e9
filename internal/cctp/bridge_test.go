package cctp

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stablekit/usdcli/internal/chain"
)

type fakeSigner struct{ addr string }

func (s fakeSigner) Address() string { return s.addr }

func (s fakeSigner) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

// chainMock serves the full set of JSON-RPC calls a bridge leg makes. Every
// receipt it returns carries a MessageSent log for message, and broadcast
// transactions get sequential hashes.
func chainMock(t *testing.T, message []byte) *httptest.Server {
	t.Helper()
	var txSeq atomic.Int64

	logData, err := messageSentArgs.Pack(message)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result interface{}
		switch req.Method {
		case "eth_chainId":
			result = "0x14a34"
		case "eth_call":
			// decimals() is the only read the bridge performs.
			result = "0x0000000000000000000000000000000000000000000000000000000000000006"
		case "eth_estimateGas":
			result = "0x30d40"
		case "eth_gasPrice":
			result = "0x3b9aca00"
		case "eth_getTransactionCount":
			result = "0x1"
		case "eth_sendRawTransaction":
			result = fmt.Sprintf("0x%064x", txSeq.Add(1))
		case "eth_getTransactionReceipt":
			result = map[string]interface{}{
				"status":      "0x1",
				"blockNumber": "0x10",
				"gasUsed":     "0x30d40",
				"logs": []map[string]interface{}{
					{
						"address": "0x7865fAfC2db2093669d92c0F33AeEF291086BEFD",
						"topics":  []string{messageSentTopic},
						"data":    "0x" + hex.EncodeToString(logData),
					},
				},
			}
		default:
			t.Fatalf("unexpected RPC method %s", req.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0", "id": req.ID, "result": result,
		}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testBridger(t *testing.T, message []byte, attestSrv *httptest.Server) *Bridger {
	t.Helper()
	reg := chain.NewRegistry()
	src, err := reg.GetByName("base")
	require.NoError(t, err)
	dst, err := reg.GetByName("arbitrum")
	require.NoError(t, err)

	rpc := chainMock(t, message)
	signer := fakeSigner{addr: "0x5FbDB2315678afecb367f032d93F642f64180aa3"}

	b := NewBridger(src, dst, chain.ModeTestnet,
		chain.NewEVMClient(rpc.URL), chain.NewEVMClient(rpc.URL), signer)
	b.WithAttestationClient(NewAttestationClientURL(attestSrv.URL))
	b.Poll = fastPoll(5)
	b.ReceiptTimeout = time.Second
	return b
}

func TestBridgeFullWorkflow(t *testing.T) {
	message := []byte("burn message payload")
	var hits atomic.Int64
	attestSrv := attestationMock(t, 1, &hits)

	b := testBridger(t, message, attestSrv)

	var steps []string
	b.Progress = func(msg string) { steps = append(steps, msg) }

	result, err := b.Bridge(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "12.5")
	require.NoError(t, err)

	assert.Equal(t, "12.5", result.Amount)
	assert.Equal(t, "base_sepolia", result.FromChain)
	assert.Equal(t, "arbitrum_sepolia", result.ToChain)
	assert.NotEmpty(t, result.ApproveTx)
	assert.NotEmpty(t, result.BurnTx)
	assert.NotEqual(t, result.ApproveTx, result.BurnTx)
	assert.Equal(t, MessageHash(message), result.MessageHash)
	assert.NotEmpty(t, result.MintTx)
	assert.False(t, result.AttestationPending)
	assert.GreaterOrEqual(t, len(steps), 4)
}

func TestBridgeAttestationTimeoutIsPartialSuccess(t *testing.T) {
	message := []byte("burn message payload")
	var hits atomic.Int64
	attestSrv := attestationMock(t, -1, &hits)

	b := testBridger(t, message, attestSrv)
	b.Poll = fastPoll(2)

	result, err := b.Bridge(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "1")
	require.NoError(t, err)

	assert.True(t, result.AttestationPending)
	assert.NotEmpty(t, result.BurnTx)
	assert.Empty(t, result.MintTx)
	assert.Contains(t, result.Note, "usdcli status "+result.BurnTx)
	assert.Equal(t, int64(2), hits.Load())
}

func TestBridgeRejectsUnsupportedRoute(t *testing.T) {
	reg := chain.NewRegistry()
	src, err := reg.GetByName("base")
	require.NoError(t, err)
	dst, err := reg.GetByName("polygon") // no CCTP contracts on testnet
	require.NoError(t, err)

	b := NewBridger(src, dst, chain.ModeTestnet, nil, nil, fakeSigner{})
	_, err = b.Bridge(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "1")
	assert.ErrorIs(t, err, chain.ErrCCTPNotSupported)
}

func TestBridgeRejectsBadAmount(t *testing.T) {
	message := []byte("burn message payload")
	var hits atomic.Int64
	attestSrv := attestationMock(t, 0, &hits)

	b := testBridger(t, message, attestSrv)
	_, err := b.Bridge(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "0.0000001")
	require.Error(t, err)
}

func TestRecoverMessage(t *testing.T) {
	message := []byte("recovered payload")
	var hits atomic.Int64
	attestSrv := attestationMock(t, 0, &hits)

	b := testBridger(t, message, attestSrv)

	got, hash, err := b.RecoverMessage("0xburnhash")
	require.NoError(t, err)
	assert.Equal(t, message, got)
	assert.Equal(t, MessageHash(message), hash)
}

func TestMintSubmitsReceiveMessage(t *testing.T) {
	message := []byte("mint payload")
	var hits atomic.Int64
	attestSrv := attestationMock(t, 0, &hits)

	b := testBridger(t, message, attestSrv)

	mintTx, err := b.Mint(context.Background(), message, "0xdeadbeef")
	require.NoError(t, err)
	assert.NotEmpty(t, mintTx)
}
