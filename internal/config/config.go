// Package config handles configuration loading and validation for the sqlast tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the sqlast command.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Parse  ParseConfig  `mapstructure:"parse" yaml:"parse"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	REPL   REPLConfig   `mapstructure:"repl" yaml:"repl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ParseConfig controls statement building. Workers <= 0 means GOMAXPROCS.
type ParseConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig selects how trees are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Color  bool   `mapstructure:"color" yaml:"color"`
}

// REPLConfig holds interactive shell settings.
type REPLConfig struct {
	Prompt      string `mapstructure:"prompt" yaml:"prompt"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
}

// EnvPrefix prefixes environment overrides, e.g. SQLAST_LOG_LEVEL.
const EnvPrefix = "SQLAST"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Parse: ParseConfig{
			Workers: 0,
		},
		Output: OutputConfig{
			Format: "yaml",
			Color:  true,
		},
		REPL: REPLConfig{
			Prompt:      "sqlast> ",
			HistoryFile: filepath.Join(os.TempDir(), ".sqlast_history"),
		},
	}
}

// Load reads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)
	v.SetDefault("parse.workers", cfg.Parse.Workers)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("repl.prompt", cfg.REPL.Prompt)
	v.SetDefault("repl.history_file", cfg.REPL.HistoryFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("sqlast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sqlast")

		// No config file is fine; defaults and env apply.
		_ = v.ReadInConfig()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are sensible
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	switch strings.ToLower(c.Output.Format) {
	case "yaml", "json":
	default:
		return fmt.Errorf("invalid output format: %s (want yaml or json)", c.Output.Format)
	}

	if c.Parse.Workers < 0 {
		return fmt.Errorf("parse.workers must not be negative: %d", c.Parse.Workers)
	}

	return nil
}

// WriteDefault writes the default configuration as YAML to path. An
// existing file is left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	content := append([]byte("# sqlast configuration file\n\n"), data...)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, content, 0644)
}
