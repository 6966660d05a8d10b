package app

import (
	"encoding/json"
	"fmt"

	"mizan-backend/internal/calculations"
	"mizan-backend/internal/config"
	"mizan-backend/internal/database"
	"mizan-backend/internal/distribution"
	"mizan-backend/internal/engine"
	"mizan-backend/internal/health"
	"mizan-backend/internal/middleware"
	"mizan-backend/internal/prices"
	"mizan-backend/internal/zakat"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. DB and Redis are optional; modules that need a missing
// dependency are simply not mounted.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis url: %w", err)
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health module
	healthHandlers := &health.Handlers{Rdb: rdb, HealthAdminKey: cfg.HealthAdminKey}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	// Price feeds with cached snapshots
	provider := &prices.Provider{
		Metals: &prices.HTTPMetalClient{BaseURL: cfg.MetalAPIURL, APIKey: cfg.MetalAPIKey},
		Fx:     &prices.HTTPFxClient{BaseURL: cfg.FxAPIURL},
	}
	if rdb != nil {
		provider.Cache = &prices.Cache{Rdb: rdb}
	}

	// Distribution allocation table
	allocator := distribution.NewAllocator()
	if cfg.ScholarWeightsJSON != "" {
		var weights map[string]float64
		if err := json.Unmarshal([]byte(cfg.ScholarWeightsJSON), &weights); err != nil {
			log.Warn().Err(err).Msg("SCHOLAR_WEIGHTS_JSON is not valid JSON, using default table")
		} else if err := allocator.SetScholarWeights(weights); err != nil {
			log.Warn().Err(err).Msg("SCHOLAR_WEIGHTS_JSON rejected, using default table")
		}
	}

	// Calculation history (requires DB)
	var calcService *calculations.Service
	if db != nil {
		calcService = &calculations.Service{DB: db}
		calcHandlers := &calculations.Handlers{Service: calcService}
		calcGroup := app.Group("/api/v1/calculations")
		calcGroup.Get("/list", calcHandlers.List)
		calcGroup.Get("/:run_id", calcHandlers.Get)
		calcGroup.Delete("/:run_id", calcHandlers.Delete)
	}

	// Zakat module
	zakatService := &zakat.Service{
		Provider:        provider,
		Allocator:       allocator,
		Calculations:    calcService,
		BaseCurrency:    cfg.BaseCurrency,
		DefaultCurrency: cfg.DefaultCurrency,
		DefaultPolicy:   engine.NisabPolicy(cfg.NisabPolicy),
	}
	zakatHandlers := &zakat.Handlers{Service: zakatService}
	zakatGroup := app.Group("/api/v1/zakat")
	zakatGroup.Post("/calculate", zakatHandlers.Calculate)
	zakatGroup.Get("/nisab", zakatHandlers.Nisab)
	zakatGroup.Get("/allocation", zakatHandlers.GetAllocation)
	zakatGroup.Get("/allocation/categories", zakatHandlers.Categories)
	zakatGroup.Post("/allocation/equal", zakatHandlers.DistributeEqually)
	zakatGroup.Post("/allocation/scholar", zakatHandlers.DistributeByScholar)
	zakatGroup.Patch("/allocation/percentage", zakatHandlers.SetPercentage)

	return app, db, rdb, nil
}
