// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads vidvaan settings from defaults, an optional YAML
// file, VIDVAAN_* environment variables, and the .secrets/ directory, in
// increasing order of precedence for the file and environment layers.
// Secrets only fill values the other layers left empty.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Names used to discover the config file and environment variables.
const (
	ConfigName = "vidvaan"
	EnvPrefix  = "VIDVAAN"
)

// SetDefaults registers every configuration key with its default value.
// Keys must be registered for AutomaticEnv to see them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.user_agent", "vidvaan/0.1")
	v.SetDefault("search.provider_timeout", "30s")
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.providers", []string{})
	v.SetDefault("search.openalex_email", "")

	v.SetDefault("summary.timeout", "60s")
	v.SetDefault("summary.user_agent", "vidvaan/0.1")
	v.SetDefault("summary.server_base", "http://127.0.0.1:5000")
	v.SetDefault("summary.max_retries", 3)

	v.SetDefault("view.page_size", 50)

	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// New returns a viper instance with defaults and environment binding set
// up. When cfgFile is empty the config file is searched for as
// vidvaan.yaml in the working directory and ~/.config/vidvaan/.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file into v. A missing file is not an error
// unless it was named explicitly. It returns the file used, if any.
func Read(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration with every default applied.
func Default() types.Config {
	v := viper.New()
	SetDefaults(v)
	var cfg types.Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate checks the settings that would otherwise fail later or hang.
func Validate(cfg types.Config) error {
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %s", cfg.Search.Timeout)
	}
	if cfg.Search.ProviderTimeout <= 0 {
		return fmt.Errorf("search.provider_timeout must be positive, got %s", cfg.Search.ProviderTimeout)
	}
	if cfg.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must not be negative, got %d", cfg.Search.MaxResults)
	}
	for _, name := range cfg.Search.Providers {
		if _, err := types.ParseRepository(name); err != nil {
			return fmt.Errorf("search.providers: %w", err)
		}
	}
	if cfg.Summary.Timeout <= 0 {
		return fmt.Errorf("summary.timeout must be positive, got %s", cfg.Summary.Timeout)
	}
	if cfg.Summary.MaxRetries < 0 {
		return fmt.Errorf("summary.max_retries must not be negative, got %d", cfg.Summary.MaxRetries)
	}
	if cfg.View.PageSize <= 0 {
		return fmt.Errorf("view.page_size must be positive, got %d", cfg.View.PageSize)
	}
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative, got %s", cfg.Server.ShutdownTimeout)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	return nil
}
