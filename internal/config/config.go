package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration for the API process.
type Config struct {
	AppEnv               string
	HTTPPort             string
	LogLevel             string
	RequestTimeout       time.Duration
	ComplexityLimit      int
	IntrospectionEnabled bool
}

func Load() (Config, error) {
	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "4000"),
		LogLevel: getEnv("LOG_LEVEL", ""),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ComplexityLimit, err = getInt("COMPLEXITY_LIMIT", 200); err != nil {
		return Config{}, err
	}
	if cfg.IntrospectionEnabled, err = getBool("INTROSPECTION_ENABLED", true); err != nil {
		return Config{}, err
	}

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return Config{}, errors.New("HTTP_PORT must be a number")
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, errors.New("REQUEST_TIMEOUT must be positive")
	}
	if cfg.ComplexityLimit < 1 {
		return Config{}, errors.New("COMPLEXITY_LIMIT must be >= 1")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return i, nil
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
