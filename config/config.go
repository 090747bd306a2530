package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	CORSOrigins      []string `mapstructure:"CORS_ORIGINS"`
	LogLevel         string   `mapstructure:"LOG_LEVEL"`
	CacheEnabled     bool     `mapstructure:"CACHE_ENABLED"`
	CacheRefreshSpec string   `mapstructure:"CACHE_REFRESH_SPEC"`
	WSBuffer         int      `mapstructure:"WS_BUFFER"`
}

var keys = []string{
	"CORS_ORIGINS",
	"LOG_LEVEL",
	"CACHE_ENABLED",
	"CACHE_REFRESH_SPEC",
	"WS_BUFFER",
}

// Load reads the process environment. main loads .env beforehand.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE_ENABLED", false)
	// Lists cached while CACHE_ENABLED is set can miss records written by
	// other services until the next refresh.
	v.SetDefault("CACHE_REFRESH_SPEC", "@every 1m")
	v.SetDefault("WS_BUFFER", 64)

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if _, err := cron.ParseStandard(c.CacheRefreshSpec); err != nil {
		return fmt.Errorf("invalid CACHE_REFRESH_SPEC %q: %w", c.CacheRefreshSpec, err)
	}
	if c.WSBuffer <= 0 {
		return fmt.Errorf("WS_BUFFER must be positive, got %d", c.WSBuffer)
	}
	return nil
}

func (c *Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
