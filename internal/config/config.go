// Package config reads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds everything the service reads from the environment. Both API
// keys are optional at startup: Google Books works unauthenticated at lower
// rate limits, and a missing NYT key surfaces as a per-request
// configuration error rather than a boot failure.
type Config struct {
	Addr              string `validate:"required"`
	NYTAPIKey         string
	GoogleBooksAPIKey string
	AllowedOrigins    []string `validate:"min=1"`
	UpstreamRPS       float64  `validate:"gt=0"`
	RateLimitRPS      float64  `validate:"gt=0"`
	RateLimitBurst    int      `validate:"gte=1"`
}

func Load() (Config, error) {
	cfg := Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		NYTAPIKey:         os.Getenv("NYT_API_KEY"),
		GoogleBooksAPIKey: os.Getenv("GOOGLE_BOOKS_API_KEY"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "*")),
		UpstreamRPS:       getEnvFloat("UPSTREAM_RPS", 2),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
