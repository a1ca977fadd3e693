// Package config loads application configuration from an optional YAML file
// and the environment. Env overrides use the ROLODEX_ prefix, e.g.
// ROLODEX_PROVIDER_CONTACT_URL.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Provider ProviderConfig
	REPL     REPLConfig
	Log      LogConfig
}

// ProviderConfig holds the collaborator API endpoints.
type ProviderConfig struct {
	ContactURL string        `mapstructure:"contact_url"`
	IPURL      string        `mapstructure:"ip_url"`
	AirURL     string        `mapstructure:"air_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// REPLConfig holds the artificial-latency window for the logger middleware.
type REPLConfig struct {
	DelayEnabled bool `mapstructure:"delay_enabled"`
	MinDelayMs   int  `mapstructure:"min_delay_ms"`
	MaxDelayMs   int  `mapstructure:"max_delay_ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. If path is empty, $HOME/.config/rolodex/config
// is tried; a missing file is not an error, defaults and env apply.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("provider.contact_url", "http://localhost:8080/api/contact")
	v.SetDefault("provider.ip_url", "https://api.ipify.org?format=json")
	v.SetDefault("provider.air_url", "http://awair-elem.local/air-data/latest")
	v.SetDefault("provider.timeout", 5*time.Second)
	v.SetDefault("repl.delay_enabled", false)
	v.SetDefault("repl.min_delay_ms", 100)
	v.SetDefault("repl.max_delay_ms", 1000)
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath("$HOME/.config/rolodex")
		v.SetConfigName("config")
		// absent default config file is fine
		_ = v.ReadInConfig()
	}

	v.SetEnvPrefix("ROLODEX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.REPL.MaxDelayMs < c.REPL.MinDelayMs {
		return Config{}, fmt.Errorf("repl.max_delay_ms (%d) must be >= repl.min_delay_ms (%d)",
			c.REPL.MaxDelayMs, c.REPL.MinDelayMs)
	}
	return c, nil
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
