package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the settings for one environment.
type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// result cache
	CacheSizeMB     int `toml:"cache_size_mb"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`

	// DBURL only comes from the environment.
	DBURL string `toml:"-"`
}

// tomlConfig mirrors the [development] and [production] sections of config.toml.
type tomlConfig struct {
	Development *Config
	Production  *Config
}

func (t *tomlConfig) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config has no [%s] section", env)
	}
	return cfg, nil
}

// loadConfig reads the section for env from the TOML file at path, then
// applies the PORT and DB_URL environment overrides and defaults.
func loadConfig(env, path string) (*Config, error) {
	var t tomlConfig
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		cfg.Port = port
	}
	cfg.DBURL = os.Getenv("DB_URL")
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.CacheSizeMB <= 0 {
		cfg.CacheSizeMB = 32
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = 300
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
