package app

import (
	"net/http/httptest"
	"strings"
	"testing"

	"mizan-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateApp with no DB/Redis/feeds still mounts the zakat and health
// routes; modules degrade rather than fail at startup.
func TestCreateApp_MinimalConfig(t *testing.T) {
	app, db, rdb, err := CreateApp(&config.Config{BaseCurrency: "usd"})
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.Nil(t, rdb)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// No price feeds configured and no cache: calculation reports 503.
	req := httptest.NewRequest("POST", "/api/v1/zakat/calculate", strings.NewReader(`{"inputs":{}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	// Allocation table works without any external dependency.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/zakat/allocation", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Calculation history requires a DB and is not mounted without one.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/calculations/list", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateApp_RejectsBadRedisURL(t *testing.T) {
	_, _, _, err := CreateApp(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestCreateApp_ScholarWeightsOverride(t *testing.T) {
	weights := `{"the_poor":65,"the_needy":5,"zakat_administrators":5,"hearts_reconciled":5,"freeing_captives":5,"debtors":5,"cause_of_allah":5,"wayfarers":5}`
	app, _, _, err := CreateApp(&config.Config{BaseCurrency: "usd", ScholarWeightsJSON: weights})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/zakat/allocation/scholar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
