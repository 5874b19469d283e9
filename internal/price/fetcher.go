// Package price fetches the USDC/USD market price from CoinGecko. USDC
// targets a 1:1 peg but trades slightly off it, which matters for large
// balances.
package price

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPI = "https://api.coingecko.com/api/v3/simple/price"
	usdcID     = "usd-coin"
)

// Fetcher retrieves the USDC spot price.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a fetcher against the public CoinGecko API.
func NewFetcher() *Fetcher {
	return NewFetcherURL(defaultAPI)
}

// NewFetcherURL creates a fetcher against an explicit endpoint (tests).
func NewFetcherURL(baseURL string) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// USDCPrice returns the current USDC price in USD.
func (f *Fetcher) USDCPrice() (float64, error) {
	url := fmt.Sprintf("%s?ids=%s&vs_currencies=usd", f.baseURL, usdcID)

	resp, err := f.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("fetching price: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading price response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price service returned %d", resp.StatusCode)
	}

	// Response: {"usd-coin":{"usd":0.9998}}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("parsing price response: %w", err)
	}
	p, ok := raw[usdcID]["usd"]
	if !ok {
		return 0, fmt.Errorf("no USDC price in response")
	}
	return p, nil
}
