package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrCacheURLRequired is returned when the standings cache URL is not
// configured. The server refuses to start without it instead of
// shipping a placeholder URL that can never resolve.
var ErrCacheURLRequired = errors.New("STANDINGS_CACHE_URL is required (e.g. https://raw.githubusercontent.com/<account>/<repo>/main/standings_cache.json)")

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Standings document
	CacheURL        string        // env: STANDINGS_CACHE_URL, required
	FetchTimeout    time.Duration // env: STANDINGS_FETCH_TIMEOUT
	RefreshInterval time.Duration // env: STANDINGS_REFRESH_INTERVAL, 0 disables background refresh

	// Redis (optional, backs the rate limiter)
	RedisURL string

	// Operator endpoints
	AdminToken string // env: ADMIN_TOKEN, guards POST /api/reload

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "MotoGP Standings"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables. The standings
// cache URL has no default; Load fails fast when it is unset.
func Load() (*Config, error) {
	cfg := &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:3000"),
		CacheURL:        getEnv("STANDINGS_CACHE_URL", ""),
		FetchTimeout:    getDuration("STANDINGS_FETCH_TIMEOUT", 15*time.Second),
		RefreshInterval: getDuration("STANDINGS_REFRESH_INTERVAL", time.Hour),
		RedisURL:        getEnv("REDIS_URL", ""),
		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", ""),

		SiteTitle:  getEnv("SITE_TITLE", "MotoGP Standings"),
		SiteFooter: getEnv("SITE_FOOTER", "Paddock - MotoGP championship standings"),
	}

	if cfg.CacheURL == "" {
		return nil, ErrCacheURLRequired
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare numbers are read as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
