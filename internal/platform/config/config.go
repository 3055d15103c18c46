package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// UndoWindow is how long a completion's monetary effect may be
	// reversed after the fact.
	UndoWindow time.Duration

	// RecalcCronSpec schedules the nightly streak recalculation.
	RecalcCronSpec string

	// Timezone pins the canonical day boundary for the whole service;
	// the live path and the nightly job both use Location.
	Timezone string
	Location *time.Location

	// AuthRateLimit is the ulule/limiter formatted rate for the public
	// auth endpoints, e.g. "10-M".
	AuthRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "chore-tracker")
	viper.SetDefault("UNDO_WINDOW", "5m")
	viper.SetDefault("RECALC_CRON_SPEC", "30 0 * * *")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	undoWindowStr := viper.GetString("UNDO_WINDOW")
	undoWindow, err := time.ParseDuration(undoWindowStr)
	if err != nil || undoWindow <= 0 {
		undoWindow = 5 * time.Minute
		log.Printf("Warning: Invalid value for UNDO_WINDOW ('%s'). Defaulting to %s.\n", undoWindowStr, undoWindow)
	}
	cfg.UndoWindow = undoWindow

	cfg.RecalcCronSpec = viper.GetString("RECALC_CRON_SPEC")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.Timezone = viper.GetString("TIMEZONE")
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}
