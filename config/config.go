// Package config loads easycore settings from defaults, an optional YAML
// file and EASYCORE_ environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/logging"
)

// Config holds application configuration.
type Config struct {
	Debug   bool          `mapstructure:"debug"`
	Undo    UndoConfig    `mapstructure:"undo"`
	Script  ScriptConfig  `mapstructure:"script"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UndoConfig holds undo stack settings.
type UndoConfig struct {
	MaxHistory int  `mapstructure:"max_history"`
	Enabled    bool `mapstructure:"enabled"`
}

// ScriptConfig holds script recording settings.
type ScriptConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and env. Env var overrides use prefix EASYCORE_,
// e.g. EASYCORE_UNDO_MAX_HISTORY=50.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("debug", false)
	v.SetDefault("undo.max_history", 20)
	v.SetDefault("undo.enabled", true)
	v.SetDefault("script.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("EASYCORE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "easycore"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EASYCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; an explicit one must be readable
		if cfgPath != "" {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Undo.MaxHistory < 0 {
		return Config{}, fmt.Errorf("undo.max_history must be >= 0, got %d", c.Undo.MaxHistory)
	}
	return c, nil
}

// RegistryOptions returns an option function applying c to core.Options.
func (c Config) RegistryOptions(logger logging.Logger) func(o *core.Options) {
	return func(o *core.Options) {
		o.Debug = c.Debug
		o.MaxHistory = c.Undo.MaxHistory
		o.UndoEnabled = c.Undo.Enabled
		o.ScriptEnabled = c.Script.Enabled
		if logger != nil {
			o.Logger = logger
		}
	}
}

// LoggerConfig returns the slog configuration described by c.
func (c Config) LoggerConfig() *logging.LoggerConfig {
	lc := logging.DefaultLoggerConfig()
	lc.Level = logging.ParseLevel(c.Logging.Level)
	if c.Logging.Format != "" {
		lc.Format = c.Logging.Format
	}
	lc.Component = "easycore"
	return lc
}
