package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds catalog document configuration
type CatalogConfig struct {
	URL        string `mapstructure:"url"`         // Catalog document URL
	TimeoutSec int    `mapstructure:"timeout_sec"` // Per-request timeout
}

// StorageConfig holds local durable storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // Preference db path; empty = memory-only
}

// UIConfig holds UI configuration
type UIConfig struct {
	CellPx int `mapstructure:"cell_px"` // Approximate viewport units per terminal cell
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:        "https://streamdex.app/data/movie_data.json",
			TimeoutSec: 30,
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		UI: UIConfig{
			CellPx: 8,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamdex", "streamdex.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "streamdex", "streamdex.log")
	}
}

// defaultStoragePath returns the default preference db path for the current OS
func defaultStoragePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "streamdex", "preferences.db")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "streamdex", "preferences.db")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamdex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "streamdex")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("STREAMDEX")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("catalog.url", cfg.Catalog.URL)
	viper.Set("catalog.timeout_sec", cfg.Catalog.TimeoutSec)
	viper.Set("storage.path", cfg.Storage.Path)
	viper.Set("ui.cell_px", cfg.UI.CellPx)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
