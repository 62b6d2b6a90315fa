package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the crs configuration
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Watch  WatchConfig  `mapstructure:"watch"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig controls where and how source files are discovered
type SourceConfig struct {
	Dir      string   `mapstructure:"dir"`
	Suffix   string   `mapstructure:"suffix"`
	SkipDirs []string `mapstructure:"skip_dirs"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Load loads the configuration. An explicit path must exist; otherwise
// crs.yml or crs.yaml is read from the working directory when present.
// Every key can be overridden by a CRS_ prefixed environment variable,
// e.g. CRS_SOURCE_DIR.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("source.dir", ".")
	v.SetDefault("source.suffix", ".crs")
	v.SetDefault("source.skip_dirs", []string{})
	v.SetDefault("watch.debounce", 100*time.Millisecond)
	v.SetDefault("log.verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("crs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SourceDir resolves the directory to scan: the first positional argument,
// then the configured source.dir.
func (c *Config) SourceDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if c.Source.Dir != "" {
		return c.Source.Dir
	}
	return "."
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Source.Suffix == "" {
		return fmt.Errorf("source.suffix must not be empty")
	}
	if strings.ContainsAny(cfg.Source.Suffix, `/\`) {
		return fmt.Errorf("source.suffix must not contain a path separator, got: %s", cfg.Source.Suffix)
	}
	if cfg.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive, got: %s", cfg.Watch.Debounce)
	}
	return nil
}
