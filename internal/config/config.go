package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	MetalAPIURL         string // spot-price feed base URL
	MetalAPIKey         string
	FxAPIURL            string // exchange-rate feed base URL
	BaseCurrency        string // pivot currency for the rate table
	DefaultCurrency     string // display currency when the client sends none
	NisabPolicy         string // "any" (default) or "lower_of_two"
	ScholarWeightsJSON  string // optional override of the scholar weighting table
	FrontendURLEndsWith string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	base := viper.GetString("BASE_CURRENCY")
	if base == "" {
		base = "usd"
	}
	display := viper.GetString("DEFAULT_CURRENCY")
	if display == "" {
		display = base
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		MetalAPIURL:         viper.GetString("METAL_API_URL"),
		MetalAPIKey:         viper.GetString("METAL_API_KEY"),
		FxAPIURL:            viper.GetString("FX_API_URL"),
		BaseCurrency:        base,
		DefaultCurrency:     display,
		NisabPolicy:         viper.GetString("NISAB_POLICY"),
		ScholarWeightsJSON:  viper.GetString("SCHOLAR_WEIGHTS_JSON"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
