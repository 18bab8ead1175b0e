// Package config loads server settings: built-in defaults, then an optional
// YAML file, then FT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Server config
const SERVER_PORT = 8080
const SERVER_SHUTDOWN_TIMEOUT = 5 * time.Second
const SERVER_RATE_LIMIT_RPS = 20.0
const SERVER_RATE_LIMIT_BURST = 40

// Redis config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Cache config
const CACHE_BACKEND_MEMORY = "memory"
const CACHE_BACKEND_REDIS = "redis"
const CACHE_CAPACITY = 500

// Cache warmer config
const CACHE_WARMER_SCHEDULE_MINUTES = 15
const CACHE_WARMER_TIER = "high"
const CACHE_WARMER_TIMEZONE = "Europe/Paris"

const ENV_PREFIX = "FT_"
const CONFIG_PATH_ENV_VAR = "FT_CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Cache   CacheConfig   `koanf:"cache"`
	Redis   RedisConfig   `koanf:"redis"`
	Warmer  WarmerConfig  `koanf:"warmer"`
	Field   FieldConfig   `koanf:"field"`
	Catalog CatalogConfig `koanf:"catalog"`
	Mapbox  MapboxConfig  `koanf:"mapbox"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	// TrustedProxies are the peers whose X-Forwarded-For is honoured.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,ip|cidr"`
	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=0"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

type CacheConfig struct {
	Backend  string `koanf:"backend" validate:"oneof=memory redis"`
	Capacity int    `koanf:"capacity" validate:"min=1"`
}

type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

type WarmerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"gt=0"`
	Tier     string        `koanf:"tier"`
	Timezone string        `koanf:"timezone"`
}

type FieldConfig struct {
	// Workers <= 0 uses GOMAXPROCS.
	Workers int `koanf:"workers"`
}

type CatalogConfig struct {
	// Path optionally points to a JSON catalog replacing the built-in one.
	Path string `koanf:"path"`
}

type MapboxConfig struct {
	Token string `koanf:"token"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            SERVER_PORT,
			ShutdownTimeout: SERVER_SHUTDOWN_TIMEOUT,
			CORSOrigins:     []string{"*"},
			RateLimitRPS:    SERVER_RATE_LIMIT_RPS,
			RateLimitBurst:  SERVER_RATE_LIMIT_BURST,
		},
		Log:   LogConfig{Level: "info", Format: "json"},
		Cache: CacheConfig{Backend: CACHE_BACKEND_MEMORY, Capacity: CACHE_CAPACITY},
		Redis: RedisConfig{Address: REDIS_DB_ADDRESS, Password: REDIS_DB_PASSWORD, DB: REDIS_DB},
		Warmer: WarmerConfig{
			Enabled:  false,
			Interval: CACHE_WARMER_SCHEDULE_MINUTES * time.Minute,
			Tier:     CACHE_WARMER_TIER,
			Timezone: CACHE_WARMER_TIMEZONE,
		},
	}
}

// Load layers defaults, the YAML file at path (or the first default path
// found when path is empty) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	for _, path := range []string{"server.cors_origins", "server.trusted_proxies"} {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(CONFIG_PATH_ENV_VAR); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps FT_SERVER__PORT to server.port. PORT and
// MAPBOX_TOKEN are honoured for compatibility; everything else is ignored.
func envTransformFunc(key string) string {
	switch key {
	case "PORT":
		return "server.port"
	case "MAPBOX_TOKEN":
		return "mapbox.token"
	case CONFIG_PATH_ENV_VAR:
		return ""
	}
	if !strings.HasPrefix(key, ENV_PREFIX) {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, ENV_PREFIX))
	return strings.ReplaceAll(key, "__", ".")
}

// splitList turns a comma-separated string value at path into a slice.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if err := k.Set(path, parts); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
