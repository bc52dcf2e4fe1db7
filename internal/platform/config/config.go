package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Commission settings
	OutOfCityBonusRate decimal.Decimal

	// RateLimit uses the limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// StatsRebuildSchedule is a cron expression for the nightly daily-stats
	// rebuild job.
	StatsRebuildSchedule string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("OUT_OF_CITY_BONUS_RATE", "0.20")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("STATS_REBUILD_SCHEDULE", "30 0 * * *")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	rateStr := viper.GetString("OUT_OF_CITY_BONUS_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		rate = decimal.NewFromFloat(0.20)
		log.Printf("Warning: Invalid value for OUT_OF_CITY_BONUS_RATE ('%s'). Defaulting to %s.\n", rateStr, rate.String())
	}
	cfg.OutOfCityBonusRate = rate

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.StatsRebuildSchedule = viper.GetString("STATS_REBUILD_SCHEDULE")

	return cfg, nil
}
