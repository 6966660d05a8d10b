package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"
)

// MetalPriceClient fetches current gold/silver spot prices per gram.
type MetalPriceClient interface {
	GetMetalPrices(ctx context.Context, currencyCode string) (nisab.MetalPrices, error)
}

// FxRateClient fetches a currency rate table relative to a base.
type FxRateClient interface {
	GetRateTable(ctx context.Context, base string) (currency.RateTable, error)
}

// HTTPMetalClient is a MetalPriceClient backed by a spot-price HTTP API.
type HTTPMetalClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type metalPricesResponse struct {
	Gold     float64 `json:"gold"`
	Silver   float64 `json:"silver"`
	Currency string  `json:"currency"`
	Source   string  `json:"source"`
}

func (c *HTTPMetalClient) GetMetalPrices(ctx context.Context, currencyCode string) (nisab.MetalPrices, error) {
	if c.BaseURL == "" {
		return nisab.MetalPrices{}, fmt.Errorf("metal prices: METAL_API_URL is not set")
	}
	endpoint := fmt.Sprintf("%s/v1/spot?currency=%s",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(currency.Normalize(currencyCode)))

	var out metalPricesResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nisab.MetalPrices{}, err
	}
	if out.Gold <= 0 && out.Silver <= 0 {
		return nisab.MetalPrices{}, fmt.Errorf("metal prices: upstream returned no usable prices")
	}
	cur := out.Currency
	if cur == "" {
		cur = currencyCode
	}
	source := out.Source
	if source == "" {
		source = "spot-api"
	}
	return nisab.MetalPrices{
		Gold:        out.Gold,
		Silver:      out.Silver,
		Currency:    currency.Normalize(cur),
		LastUpdated: time.Now().UTC(),
		Source:      source,
	}, nil
}

func (c *HTTPMetalClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("metal prices request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("metal prices: upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}

// HTTPFxClient is an FxRateClient backed by an exchange-rate HTTP API
// (frankfurter-style latest endpoint).
type HTTPFxClient struct {
	BaseURL string
	Client  *http.Client
}

type fxResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *HTTPFxClient) GetRateTable(ctx context.Context, base string) (currency.RateTable, error) {
	if c.BaseURL == "" {
		return currency.RateTable{}, fmt.Errorf("fx rates: FX_API_URL is not set")
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	endpoint := fmt.Sprintf("%s/latest?base=%s",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(strings.ToUpper(currency.Normalize(base))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return currency.RateTable{}, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return currency.RateTable{}, fmt.Errorf("fx rates request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return currency.RateTable{}, fmt.Errorf("fx rates: upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out fxResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return currency.RateTable{}, err
	}
	if len(out.Rates) == 0 {
		return currency.RateTable{}, fmt.Errorf("fx rates: upstream returned an empty table")
	}
	tableBase := out.Base
	if tableBase == "" {
		tableBase = base
	}
	return currency.NewRateTable(tableBase, out.Rates), nil
}
