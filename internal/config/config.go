// Package config loads and validates environment variables at startup.
// Malformed values fail fast; missing optional backends (Postgres, Redis)
// leave their URL empty and the caller degrades accordingly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the ingest service.
type Config struct {
	Port                string
	Token               string // ProductHunt API bearer token
	DatabaseURL         string // empty = sink runs in logged inert mode
	RedisURL            string // empty = daemon runs without the run lock
	ScrapeIntervalHours int    // how often the daemon cron fires
	RequestDelay        time.Duration
}

// Load reads environment variables (after an optional .env file) and returns
// a validated Config.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	interval := 24
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	delay := 1.0
	if s := os.Getenv("REQUEST_DELAY_SECONDS"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("REQUEST_DELAY_SECONDS must be a non-negative number, got %q", s)
		}
		delay = v
	}

	port := os.Getenv("INGEST_PORT")
	if port == "" {
		port = "8081"
	}

	return &Config{
		Port:                port,
		Token:               os.Getenv("PRODUCTHUNT_TOKEN"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		ScrapeIntervalHours: interval,
		RequestDelay:        time.Duration(delay * float64(time.Second)),
	}, nil
}

// RequireToken returns an error when the ProductHunt token is not set.
// Commands that call the API check this before doing anything else.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("PRODUCTHUNT_TOKEN is required")
	}
	return nil
}
