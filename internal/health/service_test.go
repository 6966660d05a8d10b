package health

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"mizan-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

type failPinger struct{}

func (failPinger) Ping() error { return fmt.Errorf("down") }

func testRdb(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCollectHealth_AllConnected(t *testing.T) {
	rdb := testRdb(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResTime, "150", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResCount, "10", 0).Err())

	result := CollectHealth(ctx, rdb, okPinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, int64(10), result.Traffic.TotalRequests)
	assert.Equal(t, int64(2), result.Traffic.FailedCount)
	assert.Equal(t, "15.0ms", result.Traffic.AvgResponseTime)
}

func TestCollectHealth_Degraded(t *testing.T) {
	result := CollectHealth(context.Background(), testRdb(t), failPinger{})
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestCollectHealth_NoDB(t *testing.T) {
	result := CollectHealth(context.Background(), testRdb(t), nil)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "ok", result.Status)
}

func TestJSONHandler(t *testing.T) {
	h := &Handlers{Rdb: testRdb(t)}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResetHandler_RequiresKey(t *testing.T) {
	h := &Handlers{Rdb: testRdb(t), HealthAdminKey: "secret"}
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/reset?key=secret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
