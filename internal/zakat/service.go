package zakat

import (
	"context"
	"errors"

	"mizan-backend/internal/assets"
	"mizan-backend/internal/calculations"
	"mizan-backend/internal/currency"
	"mizan-backend/internal/distribution"
	"mizan-backend/internal/engine"
	"mizan-backend/internal/nisab"
	"mizan-backend/internal/prices"

	"github.com/rs/zerolog/log"
)

// ErrPricesUnavailable signals that neither the feeds nor the cache
// could supply a usable snapshot. Handlers map it to 503.
var ErrPricesUnavailable = errors.New("price data unavailable")

// Service runs zakat calculations over the latest price snapshots and
// owns the distribution allocation table.
type Service struct {
	Provider        *prices.Provider
	Allocator       *distribution.Allocator
	Calculations    *calculations.Service // nil when no DB is configured
	BaseCurrency    string
	DefaultCurrency string
	DefaultPolicy   engine.NisabPolicy
}

// CalculateRequest is the input contract from the asset-entry UI.
type CalculateRequest struct {
	Inputs          assets.Inputs `json:"inputs"`
	DisplayCurrency string        `json:"display_currency"`
	NisabPolicy     string        `json:"nisab_policy"`
	Save            bool          `json:"save"`
}

// CalculateResponse pairs the engine result with the refreshed
// allocation table and, when requested, the persisted run ID.
type CalculateResponse struct {
	Result     engine.Result         `json:"result"`
	Allocation distribution.Snapshot `json:"allocation"`
	RunID      string                `json:"run_id,omitempty"`
}

func (s *Service) policy(raw string) engine.NisabPolicy {
	switch engine.NisabPolicy(raw) {
	case engine.PolicyAnyThreshold, engine.PolicyLowerOfTwo:
		return engine.NisabPolicy(raw)
	}
	if s.DefaultPolicy != "" {
		return s.DefaultPolicy
	}
	return engine.PolicyAnyThreshold
}

func (s *Service) displayCurrency(raw string) string {
	if code := currency.Normalize(raw); code != "" {
		return code
	}
	if s.DefaultCurrency != "" {
		return currency.Normalize(s.DefaultCurrency)
	}
	return currency.Normalize(s.BaseCurrency)
}

// snapshots fetches the metal prices and rate table for one run.
// Metal prices are requested in the display currency first so the
// nisab threshold can be direct; the rate-table base currency is the
// fallback, with conversion flagged via IsDirectPrice downstream.
func (s *Service) snapshots(ctx context.Context, display string) (nisab.MetalPrices, currency.RateTable, error) {
	table, err := s.Provider.RateTable(ctx, s.BaseCurrency)
	if err != nil {
		return nisab.MetalPrices{}, currency.RateTable{}, ErrPricesUnavailable
	}
	metal, err := s.Provider.MetalPrices(ctx, display)
	if err != nil {
		log.Info().Str("currency", display).Msg("no native metal prices, falling back to base currency")
		metal, err = s.Provider.MetalPrices(ctx, s.BaseCurrency)
		if err != nil {
			return nisab.MetalPrices{}, currency.RateTable{}, ErrPricesUnavailable
		}
	}
	return metal, table, nil
}

// Calculate runs the engine on the supplied inputs, refreshes the
// allocation amounts from the new zakat-due figure, and optionally
// persists the run.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*CalculateResponse, error) {
	display := s.displayCurrency(req.DisplayCurrency)
	policy := s.policy(req.NisabPolicy)

	metal, table, err := s.snapshots(ctx, display)
	if err != nil {
		return nil, err
	}

	result := engine.Calculate(req.Inputs, metal, table, engine.Options{
		DisplayCurrency: display,
		Policy:          policy,
	})
	alloc := s.Allocator.SetTotalDue(result.ZakatDue)

	resp := &CalculateResponse{Result: result, Allocation: alloc}
	if req.Save && s.Calculations != nil {
		run, err := s.Calculations.Save(ctx, result, policy, alloc)
		if err != nil {
			// Persistence failure does not void the calculation.
			log.Error().Err(err).Msg("saving calculation run failed")
		} else {
			resp.RunID = run.RunID.String()
		}
	}
	return resp, nil
}

// NisabStatus evaluates the threshold for one metal in a display
// currency without running a full calculation.
func (s *Service) NisabStatus(ctx context.Context, metalType nisab.ThresholdType, displayCurrency string) (nisab.Status, error) {
	display := s.displayCurrency(displayCurrency)
	metal, table, err := s.snapshots(ctx, display)
	if err != nil {
		return nisab.Status{}, err
	}
	return nisab.Evaluate(metalType, metal, table, display), nil
}
