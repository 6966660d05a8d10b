package zakat

import (
	"errors"

	"mizan-backend/internal/distribution"
	"mizan-backend/internal/nisab"
	"mizan-backend/internal/pkg/response"
	"mizan-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles zakat calculation and allocation handlers.
type Handlers struct {
	Service *Service
}

// Calculate POST /api/v1/zakat/calculate
func (h *Handlers) Calculate(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.DisplayCurrency != "" && !validation.IsValidCurrencyCode(req.DisplayCurrency) {
		return response.Error(c, "display_currency must be a 3-letter currency code", 400, nil)
	}
	resp, err := h.Service.Calculate(c.Context(), req)
	if err != nil {
		if errors.Is(err, ErrPricesUnavailable) {
			return response.Error(c, "Price data unavailable, try again later", fiber.StatusServiceUnavailable, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Zakat calculated successfully", resp, nil)
}

// Nisab GET /api/v1/zakat/nisab?metal=gold&currency=usd
func (h *Handlers) Nisab(c *fiber.Ctx) error {
	metal := nisab.ThresholdType(c.Query("metal", string(nisab.Gold)))
	if metal != nisab.Gold && metal != nisab.Silver {
		return response.Error(c, "metal must be 'gold' or 'silver'", 400, nil)
	}
	if cur := c.Query("currency"); cur != "" && !validation.IsValidCurrencyCode(cur) {
		return response.Error(c, "currency must be a 3-letter currency code", 400, nil)
	}
	status, err := h.Service.NisabStatus(c.Context(), metal, c.Query("currency"))
	if err != nil {
		if errors.Is(err, ErrPricesUnavailable) {
			return response.Error(c, "Price data unavailable, try again later", fiber.StatusServiceUnavailable, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Nisab threshold fetched successfully", status, nil)
}

// GetAllocation GET /api/v1/zakat/allocation
func (h *Handlers) GetAllocation(c *fiber.Ctx) error {
	return response.Success(c, "Allocation fetched successfully", h.Service.Allocator.Snapshot(), nil)
}

// DistributeEqually POST /api/v1/zakat/allocation/equal
func (h *Handlers) DistributeEqually(c *fiber.Ctx) error {
	return response.Success(c, "Allocation set to equal split", h.Service.Allocator.DistributeEqually(), nil)
}

// DistributeByScholar POST /api/v1/zakat/allocation/scholar
func (h *Handlers) DistributeByScholar(c *fiber.Ctx) error {
	return response.Success(c, "Allocation set to scholar weighting", h.Service.Allocator.DistributeByScholar(), nil)
}

type setPercentageRequest struct {
	CategoryID string   `json:"category_id"`
	Percentage *float64 `json:"percentage"`
}

// SetPercentage PATCH /api/v1/zakat/allocation/percentage
func (h *Handlers) SetPercentage(c *fiber.Ctx) error {
	var req setPercentageRequest
	if err := c.BodyParser(&req); err != nil || req.CategoryID == "" || req.Percentage == nil {
		return response.Error(c, "category_id and percentage are required", 400, nil)
	}
	snap, err := h.Service.Allocator.SetPercentage(req.CategoryID, *req.Percentage)
	if err != nil {
		return response.Error(c, err.Error(), 400, nil)
	}
	return response.Success(c, "Allocation updated successfully", snap, nil)
}

// Categories GET /api/v1/zakat/allocation/categories
func (h *Handlers) Categories(c *fiber.Ctx) error {
	return response.Success(c, "Recipient categories fetched successfully", distribution.CategoryIDs, nil)
}
