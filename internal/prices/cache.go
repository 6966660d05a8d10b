package prices

import (
	"context"
	"encoding/json"
	"time"

	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"

	"github.com/redis/go-redis/v9"
)

const (
	metalKey    = "prices:metal:"
	ratesKey    = "prices:rates:"
	snapshotTTL = 24 * time.Hour
)

// Cache stores the last known price/rate snapshots in Redis so the
// engine can keep working on stale data when an upstream feed is down.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

type cachedRates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *Cache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return snapshotTTL
}

// PutMetalPrices stores a metal-price snapshot keyed by its currency.
func (c *Cache) PutMetalPrices(ctx context.Context, p nisab.MetalPrices) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.Rdb.Set(ctx, metalKey+currency.Normalize(p.Currency), b, c.ttl()).Err()
}

// GetMetalPrices returns the cached snapshot for a currency, or
// ok=false when none exists.
func (c *Cache) GetMetalPrices(ctx context.Context, currencyCode string) (nisab.MetalPrices, bool) {
	b, err := c.Rdb.Get(ctx, metalKey+currency.Normalize(currencyCode)).Bytes()
	if err != nil {
		return nisab.MetalPrices{}, false
	}
	var p nisab.MetalPrices
	if err := json.Unmarshal(b, &p); err != nil {
		return nisab.MetalPrices{}, false
	}
	return p, true
}

// PutRateTable stores a rate-table snapshot keyed by its base currency.
func (c *Cache) PutRateTable(ctx context.Context, t currency.RateTable) error {
	b, err := json.Marshal(cachedRates{Base: t.BaseCurrency, Rates: t.Factors()})
	if err != nil {
		return err
	}
	return c.Rdb.Set(ctx, ratesKey+t.BaseCurrency, b, c.ttl()).Err()
}

// GetRateTable returns the cached table for a base currency, or
// ok=false when none exists.
func (c *Cache) GetRateTable(ctx context.Context, base string) (currency.RateTable, bool) {
	b, err := c.Rdb.Get(ctx, ratesKey+currency.Normalize(base)).Bytes()
	if err != nil {
		return currency.RateTable{}, false
	}
	var cr cachedRates
	if err := json.Unmarshal(b, &cr); err != nil || len(cr.Rates) == 0 {
		return currency.RateTable{}, false
	}
	return currency.NewRateTable(cr.Base, cr.Rates), true
}
