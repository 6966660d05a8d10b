package prices

import (
	"context"
	"fmt"

	"mizan-backend/internal/currency"
	"mizan-backend/internal/nisab"

	"github.com/rs/zerolog/log"
)

// Provider hands out price/rate snapshots, preferring fresh upstream
// data and falling back to the last cached snapshot when a feed is
// down. The engine always receives a complete snapshot or an explicit
// error, never a zero-valued price.
type Provider struct {
	Metals MetalPriceClient
	Fx     FxRateClient
	Cache  *Cache
}

// MetalPrices returns a spot-price snapshot in the given currency.
func (p *Provider) MetalPrices(ctx context.Context, currencyCode string) (nisab.MetalPrices, error) {
	currencyCode = currency.Normalize(currencyCode)
	if p.Metals != nil {
		snap, err := p.Metals.GetMetalPrices(ctx, currencyCode)
		if err == nil {
			if p.Cache != nil {
				if cacheErr := p.Cache.PutMetalPrices(ctx, snap); cacheErr != nil {
					log.Warn().Err(cacheErr).Msg("caching metal prices failed")
				}
			}
			return snap, nil
		}
		log.Warn().Err(err).Str("currency", currencyCode).Msg("metal price feed unavailable, trying cache")
	}
	if p.Cache != nil {
		if snap, ok := p.Cache.GetMetalPrices(ctx, currencyCode); ok {
			return snap, nil
		}
	}
	return nisab.MetalPrices{}, fmt.Errorf("metal prices unavailable for %s", currencyCode)
}

// RateTable returns a currency rate table for the given base.
func (p *Provider) RateTable(ctx context.Context, base string) (currency.RateTable, error) {
	base = currency.Normalize(base)
	if p.Fx != nil {
		table, err := p.Fx.GetRateTable(ctx, base)
		if err == nil {
			if p.Cache != nil {
				if cacheErr := p.Cache.PutRateTable(ctx, table); cacheErr != nil {
					log.Warn().Err(cacheErr).Msg("caching rate table failed")
				}
			}
			return table, nil
		}
		log.Warn().Err(err).Str("base", base).Msg("fx rate feed unavailable, trying cache")
	}
	if p.Cache != nil {
		if table, ok := p.Cache.GetRateTable(ctx, base); ok {
			return table, nil
		}
	}
	return currency.RateTable{}, fmt.Errorf("exchange rates unavailable for base %s", base)
}
