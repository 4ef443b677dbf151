// Package config loads mergepdf defaults from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"example.com/mergepdf/internal/order"
)

const (
	// AppName is the application name.
	AppName = "mergepdf"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// EnvPrefix prefixes every environment variable, e.g. MERGEPDF_SORT_BY.
	EnvPrefix = "MERGEPDF"

	// DefaultOutput is the output file used when none is given.
	DefaultOutput = "merged.pdf"
)

// Config holds the defaults for the command-line flags.
type Config struct {
	SortBy    string `mapstructure:"sort_by"`
	Recursive bool   `mapstructure:"recursive"`
	Reverse   bool   `mapstructure:"reverse"`
	Output    string `mapstructure:"output"`
	Verbose   bool   `mapstructure:"verbose"`
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// ConfigFile is an explicit file. It must exist.
	ConfigFile string
	// ConfigDir replaces the per-user config directory.
	ConfigDir string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SortBy: string(order.ByFilename),
		Output: DefaultOutput,
	}
}

// Dir returns the per-user config directory, $XDG_CONFIG_HOME/mergepdf on
// Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration and returns it with the path of the file
// it was read from, or "" when only defaults and the environment applied.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("sort_by", defaults.SortBy)
	v.SetDefault("recursive", defaults.Recursive)
	v.SetDefault("reverse", defaults.Reverse)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	resolved, err := readConfigFile(v, opts)
	if err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		if resolved != "" {
			return nil, "", fmt.Errorf("%s: %w", resolved, err)
		}
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFile, err)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		d, err := Dir()
		if err != nil {
			// No home or config dir: defaults and env still apply.
			return "", nil
		}
		dir = d
	}

	v.SetConfigName(ConfigFileName)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func (c *Config) validate() error {
	st, err := order.ParseStrategy(c.SortBy)
	if err != nil {
		return fmt.Errorf("sort_by: %w", err)
	}
	c.SortBy = string(st)
	c.Output = strings.TrimSpace(c.Output)
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return nil
}
