package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.API.Timeout != 10*time.Second || cfg.API.LoginPath != "/user/login" || cfg.API.LoginRoute != "/login" {
		t.Fatalf("unexpected API defaults: %+v", cfg.API)
	}
	if cfg.Store.Backend != StoreFile || cfg.Store.Prefix != "curato:" {
		t.Fatalf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.SearchDebounce != 300*time.Millisecond || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.SessionPath(), "session.json") {
		t.Fatalf("unexpected session path %q", cfg.SessionPath())
	}
}

func TestLoadFrom_PrefixedOverrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"CURATO_API_BASE_URL":    "https://api.example.com",
		"CURATO_API_TIMEOUT":     "2s",
		"CURATO_STORE_BACKEND":   "redis",
		"CURATO_STORE_PATH":      "/tmp/s.json",
		"CURATO_REDIS_DB":        "3",
		"CURATO_LOG_PRETTY":      "false",
		"CURATO_SEARCH_DEBOUNCE": "50ms",
		"API_TIMEOUT":            "99s",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" || cfg.API.Timeout != 2*time.Second {
		t.Fatalf("unexpected API config: %+v", cfg.API)
	}
	if cfg.Store.Backend != StoreRedis || cfg.Redis.DB != 3 || cfg.SessionPath() != "/tmp/s.json" {
		t.Fatalf("unexpected store config: %+v %+v", cfg.Store, cfg.Redis)
	}
	if cfg.LogPretty || cfg.SearchDebounce != 50*time.Millisecond {
		t.Fatalf("unexpected ambient config: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"backend": {"CURATO_STORE_BACKEND": "sqlite"},
		"timeout": {"CURATO_API_TIMEOUT": "-1s"},
		"parse":   {"CURATO_REDIS_DB": "three"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
