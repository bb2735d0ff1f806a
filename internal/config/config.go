// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the marketplace service.
type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	CacheTTLSeconds  int // TTL on cached job listings
	WarmIntervalMins int // How often the cron warms the open-jobs listing
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

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl := 60
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CACHE_TTL_SECONDS must be a positive integer, got %q", s)
		}
		ttl = v
	}

	warm := 5
	if s := os.Getenv("CACHE_WARM_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CACHE_WARM_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		warm = v
	}

	port := os.Getenv("MARKETPLACE_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:             port,
		DatabaseURL:      dbURL,
		RedisURL:         redisURL,
		JWTSecret:        secret,
		CacheTTLSeconds:  ttl,
		WarmIntervalMins: warm,
	}, nil
}
