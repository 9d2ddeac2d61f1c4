package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "CURATO_"

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	API   APIConfig
	Store StoreConfig
	Redis RedisConfig

	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	LogPretty      bool          `env:"LOG_PRETTY,      default=true"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE, default=300ms"`
}

type APIConfig struct {
	BaseURL    string        `env:"API_BASE_URL, default=http://localhost:5000"`
	Timeout    time.Duration `env:"API_TIMEOUT,  default=10s"`
	LoginPath  string        `env:"LOGIN_PATH,   default=/user/login"`
	LoginRoute string        `env:"LOGIN_ROUTE,  default=/login"`
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=file"`
	// Path is the session file; empty means the user config directory.
	Path   string `env:"STORE_PATH"`
	Prefix string `env:"STORE_PREFIX, default=curato:"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from CURATO_* environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l, with EnvPrefix applied.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SessionPath returns the file store location.
func (c *Config) SessionPath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "curato", "session.json")
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive")
	}
	return nil
}
