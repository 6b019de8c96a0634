// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the aggregator.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	API1URL              string // Provider with the array-shaped payload
	API2URL              string // Provider with the map-shaped payload
	FetchIntervalMinutes int    // How often the ingestion cron fires
	HTTPTimeout          time.Duration
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 1
	if s := os.Getenv("FETCH_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("FETCH_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		interval = v
	}

	timeout := 15 * time.Second
	if s := os.Getenv("HTTP_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		timeout = time.Duration(v) * time.Second
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "3000"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		API1URL:              os.Getenv("API1_URL"),
		API2URL:              os.Getenv("API2_URL"),
		FetchIntervalMinutes: interval,
		HTTPTimeout:          timeout,
	}, nil
}
