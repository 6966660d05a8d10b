package calculations

import (
	"strconv"

	"mizan-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles calculation-history handlers.
type Handlers struct {
	Service *Service
}

// List GET /api/v1/calculations/list
func (h *Handlers) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	runs, err := h.Service.List(c.Context(), limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Calculations fetched successfully", runs, fiber.Map{"count": len(runs)})
}

// Get GET /api/v1/calculations/:run_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("run_id"))
	if err != nil {
		return response.Error(c, "Invalid run ID format (must be a valid UUID)", 400, nil)
	}
	run, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err.Error() == "Calculation not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Calculation fetched successfully", run, nil)
}

// Delete DELETE /api/v1/calculations/:run_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("run_id"))
	if err != nil {
		return response.Error(c, "Invalid run ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err.Error() == "Calculation not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Calculation deleted successfully", fiber.Map{"run_id": id}, nil)
}
