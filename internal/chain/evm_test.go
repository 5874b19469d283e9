package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcMock starts a JSON-RPC server answering each method with the canned
// result from results. Unknown methods get a JSON-RPC error response.
func rpcMock(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if result, ok := results[req.Method]; ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCallContract(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_call": "0x0000000000000000000000000000000000000000000000000000000000000006",
	})

	c := NewEVMClient(srv.URL)
	out, err := c.CallContract("0x1111111111111111111111111111111111111111", "0x313ce567")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000006", out)
}

func TestGasPriceAndChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_gasPrice": "0x3b9aca00",
		"eth_chainId":  "0x2105",
	})

	c := NewEVMClient(srv.URL)

	price, err := c.GasPrice()
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), price.Int64())

	id, err := c.ChainID()
	require.NoError(t, err)
	assert.Equal(t, int64(8453), id.Int64())
}

func TestGetNonce(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionCount": "0x2a",
	})

	c := NewEVMClient(srv.URL)
	nonce, err := c.GetNonce("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)
}

func TestRPCErrorSurfaced(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{})

	c := NewEVMClient(srv.URL)
	_, err := c.GasPrice()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestGetTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": nil,
	})

	c := NewEVMClient(srv.URL)
	receipt, err := c.GetTransactionReceipt("0xdead")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestGetTransactionReceiptMined(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x1",
			"blockNumber": "0x10",
			"gasUsed":     "0x5208",
			"logs": []map[string]interface{}{
				{
					"address": "0x2222222222222222222222222222222222222222",
					"topics":  []string{"0xaaaa"},
					"data":    "0x1234",
				},
			},
		},
	})

	c := NewEVMClient(srv.URL)
	receipt, err := c.GetTransactionReceipt("0xbeef")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(1), receipt.Status)
	assert.Equal(t, uint64(16), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, "0x1234", receipt.Logs[0].Data)
}

func TestWaitForReceiptRevert(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x0",
			"blockNumber": "0x10",
			"gasUsed":     "0x5208",
		},
	})

	c := NewEVMClient(srv.URL)
	receipt, err := c.WaitForReceipt(context.Background(), "0xbeef", time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(0), receipt.Status)
}

func TestWaitForReceiptContextExpires(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": nil,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewEVMClient(srv.URL)
	_, err := c.WaitForReceipt(ctx, "0xbeef", 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPing(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_blockNumber": "0x100",
	})

	c := NewEVMClient(srv.URL)
	latency, block, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(256), block)
	assert.Greater(t, latency, time.Duration(0))
}
