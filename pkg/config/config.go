package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds the data directory layout shared by every component.
// It is resolved once at process start and passed down explicitly.
type Config struct {
	RawDataDir       string `mapstructure:"raw_data_dir"`
	ProcessedDataDir string `mapstructure:"processed_data_dir"`
}

// Build resolves configuration in increasing precedence: built-in defaults,
// an optional yaml config file, LOBBYVIEW_* environment variables, then
// command-line flags. A missing config file is only an error when one was
// named explicitly.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("raw_data_dir", filepath.Join("data", "raw"))
	v.SetDefault("processed_data_dir", filepath.Join("data", "processed"))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lobbyview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LOBBYVIEW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Only changed flags override; an untouched flag would otherwise mask
	// the defaults with its empty value.
	if flags != nil {
		if f := flags.Lookup("raw-dir"); f != nil && f.Changed {
			if err := v.BindPFlag("raw_data_dir", f); err != nil {
				return nil, err
			}
		}
		if f := flags.Lookup("processed-dir"); f != nil && f.Changed {
			if err := v.BindPFlag("processed_data_dir", f); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ReportsPath is the fixed location of the raw reports table.
func (c *Config) ReportsPath() string {
	return filepath.Join(c.RawDataDir, "reports.csv")
}

// ClientsPath is the fixed location of the raw clients table.
func (c *Config) ClientsPath() string {
	return filepath.Join(c.RawDataDir, "clients.csv")
}

// OutputPath is the fixed location of the cleaned firm-year table.
func (c *Config) OutputPath() string {
	return filepath.Join(c.ProcessedDataDir, "lobbying_clean.csv")
}
