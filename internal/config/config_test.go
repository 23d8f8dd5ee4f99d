package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_PORT", "LOG_LEVEL", "REQUEST_TIMEOUT", "COMPLEXITY_LIMIT", "INTROSPECTION_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q; want %q", cfg.AppEnv, "development")
	}
	if cfg.HTTPPort != "4000" {
		t.Errorf("HTTPPort = %q; want %q", cfg.HTTPPort, "4000")
	}
	if cfg.RequestTimeout != 20*time.Second {
		t.Errorf("RequestTimeout = %s; want 20s", cfg.RequestTimeout)
	}
	if cfg.ComplexityLimit != 200 {
		t.Errorf("ComplexityLimit = %d; want 200", cfg.ComplexityLimit)
	}
	if !cfg.IntrospectionEnabled {
		t.Error("IntrospectionEnabled = false; want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", " 8080 ")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("COMPLEXITY_LIMIT", "50")
	t.Setenv("INTROSPECTION_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		AppEnv:               "production",
		HTTPPort:             "8080",
		LogLevel:             "warn",
		RequestTimeout:       5 * time.Second,
		ComplexityLimit:      50,
		IntrospectionEnabled: false,
	}
	if cfg != want {
		t.Fatalf("Load() = %+v; want %+v", cfg, want)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port", key: "HTTP_PORT", val: "http"},
		{name: "timeout", key: "REQUEST_TIMEOUT", val: "-1s"},
		{name: "complexity", key: "COMPLEXITY_LIMIT", val: "0"},
		{name: "timeout not a duration", key: "REQUEST_TIMEOUT", val: "abc"},
		{name: "complexity not a number", key: "COMPLEXITY_LIMIT", val: "ten"},
		{name: "introspection not a bool", key: "INTROSPECTION_ENABLED", val: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("error %q does not name %s", err, tc.key)
			}
		})
	}
}
