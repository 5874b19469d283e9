package price

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceMock(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "usd-coin")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUSDCPrice(t *testing.T) {
	srv := priceMock(t, http.StatusOK, `{"usd-coin":{"usd":0.9998}}`)

	p, err := NewFetcherURL(srv.URL).USDCPrice()
	require.NoError(t, err)
	assert.InDelta(t, 0.9998, p, 1e-9)
}

func TestUSDCPriceMissingFromResponse(t *testing.T) {
	srv := priceMock(t, http.StatusOK, `{}`)

	_, err := NewFetcherURL(srv.URL).USDCPrice()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no USDC price")
}

func TestUSDCPriceRateLimited(t *testing.T) {
	srv := priceMock(t, http.StatusTooManyRequests, `{"status":{"error_code":429}}`)

	_, err := NewFetcherURL(srv.URL).USDCPrice()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestUSDCPriceGarbageBody(t *testing.T) {
	srv := priceMock(t, http.StatusOK, `not json`)

	_, err := NewFetcherURL(srv.URL).USDCPrice()
	require.Error(t, err)
}
