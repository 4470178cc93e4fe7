// Package config handles Navan configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/navan/config.yaml, /etc/navan/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "navan", "config.yaml"))
	}

	paths = append(paths, "/etc/navan/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all Navan configuration.
type Config struct {
	Listen     ListenConfig     `yaml:"listen"`
	Generation GenerationConfig `yaml:"generation"`
	Weather    WeatherConfig    `yaml:"weather"`
	// HistoryTurns is how many past messages are sent to the generator
	// with each turn (default 6).
	HistoryTurns int    `yaml:"history_turns"`
	DataDir      string `yaml:"data_dir"`
	LogLevel     string `yaml:"log_level"`
}

// ListenConfig defines the API server settings.
type ListenConfig struct {
	Address string `yaml:"address"` // Bind address (default: "" = all interfaces)
	Port    int    `yaml:"port"`
}

// GenerationConfig selects and configures the text-generation provider.
type GenerationConfig struct {
	// Provider is "deepseek" or "offline". The offline provider produces
	// deterministic canned replies and needs no network or API key.
	Provider string         `yaml:"provider"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
}

// DeepSeekConfig defines DeepSeek API settings.
type DeepSeekConfig struct {
	BaseURL string `yaml:"base_url"` // Default: https://api.deepseek.com
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"` // Default: deepseek-chat
}

// WeatherConfig defines the geocoding and forecast endpoints.
// Both default to the public Open-Meteo services; tests point them
// at local fakes.
type WeatherConfig struct {
	GeocodeURL  string `yaml:"geocode_url"`
	ForecastURL string `yaml:"forecast_url"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a Config with all defaults applied, suitable for
// running without a config file (offline provider, local data dir).
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Listen.Port == 0 {
		c.Listen.Port = 3001
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = "offline"
	}
	if c.Generation.DeepSeek.BaseURL == "" {
		c.Generation.DeepSeek.BaseURL = "https://api.deepseek.com"
	}
	if c.Generation.DeepSeek.Model == "" {
		c.Generation.DeepSeek.Model = "deepseek-chat"
	}
	if c.Weather.GeocodeURL == "" {
		c.Weather.GeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if c.Weather.ForecastURL == "" {
		c.Weather.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if c.HistoryTurns <= 0 {
		c.HistoryTurns = 6
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
}

// Validate checks for configuration mistakes that should stop startup.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case "deepseek":
		if c.Generation.DeepSeek.APIKey == "" {
			return fmt.Errorf("generation.deepseek.api_key is required when provider is deepseek")
		}
	case "offline":
	default:
		return fmt.Errorf("unknown generation provider %q (valid: deepseek, offline)", c.Generation.Provider)
	}
	return nil
}
