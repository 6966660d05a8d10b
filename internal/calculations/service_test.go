package calculations

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"mizan-backend/internal/assets"
	"mizan-backend/internal/distribution"
	"mizan-backend/internal/domain"
	"mizan-backend/internal/engine"
	"mizan-backend/internal/nisab"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCalculationsTest(t *testing.T) (*Handlers, *Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CalculationRun{}))
	svc := &Service{DB: db}
	return &Handlers{Service: svc}, svc
}

func sampleResult() engine.Result {
	return engine.Result{
		TotalAssets:     50000,
		ZakatableAmount: 50000,
		ZakatDue:        1250,
		IsEligible:      true,
		Nisab:           nisab.Status{ThresholdType: nisab.Gold, ThresholdValue: 7988.30, MeetsNisab: true, IsDirectPrice: true},
		Breakdown: map[assets.Category]assets.Breakdown{
			assets.CategoryCash: {Total: 50000, Zakatable: 50000},
		},
		DisplayCurrency: "usd",
	}
}

func TestSaveAndGet(t *testing.T) {
	_, svc := setupCalculationsTest(t)
	ctx := context.Background()
	alloc := distribution.NewAllocator().SetTotalDue(1250)

	run, err := svc.Save(ctx, sampleResult(), engine.PolicyAnyThreshold, alloc)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.RunID)
	assert.Equal(t, 1250.0, run.ZakatDue)
	assert.True(t, run.IsEligible)

	got, err := svc.Get(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, "usd", got.DisplayCurrency)
	assert.Equal(t, string(engine.PolicyAnyThreshold), got.NisabPolicy)

	var breakdown map[string]assets.Breakdown
	require.NoError(t, json.Unmarshal(got.Breakdown, &breakdown))
	assert.Equal(t, 50000.0, breakdown["cash"].Zakatable)

	var snap distribution.Snapshot
	require.NoError(t, json.Unmarshal(got.Allocation, &snap))
	assert.Len(t, snap.Allocations, 8)
	assert.Equal(t, 1250.0, snap.TotalDue)
}

func TestGet_NotFound(t *testing.T) {
	_, svc := setupCalculationsTest(t)
	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "Calculation not found", err.Error())
}

func TestList_NewestFirst(t *testing.T) {
	_, svc := setupCalculationsTest(t)
	ctx := context.Background()
	alloc := distribution.NewAllocator().Snapshot()
	for i := 0; i < 3; i++ {
		_, err := svc.Save(ctx, sampleResult(), engine.PolicyAnyThreshold, alloc)
		require.NoError(t, err)
	}
	runs, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestDelete(t *testing.T) {
	_, svc := setupCalculationsTest(t)
	ctx := context.Background()
	run, err := svc.Save(ctx, sampleResult(), engine.PolicyLowerOfTwo, distribution.NewAllocator().Snapshot())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, run.RunID))
	err = svc.Delete(ctx, run.RunID)
	require.Error(t, err)
	assert.Equal(t, "Calculation not found", err.Error())
}

func TestHandlers_GetInvalidID(t *testing.T) {
	h, _ := setupCalculationsTest(t)
	app := fiber.New()
	app.Get("/api/v1/calculations/:run_id", h.Get)

	req := httptest.NewRequest("GET", "/api/v1/calculations/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlers_GetNotFound(t *testing.T) {
	h, _ := setupCalculationsTest(t)
	app := fiber.New()
	app.Get("/api/v1/calculations/:run_id", h.Get)

	req := httptest.NewRequest("GET", "/api/v1/calculations/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandlers_List(t *testing.T) {
	h, svc := setupCalculationsTest(t)
	_, err := svc.Save(context.Background(), sampleResult(), engine.PolicyAnyThreshold, distribution.NewAllocator().Snapshot())
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/v1/calculations/list", h.List)
	req := httptest.NewRequest("GET", "/api/v1/calculations/list", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
