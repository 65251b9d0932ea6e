package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Defaults come from the
// environment; an optional YAML file (CONFIG_FILE) overlays them, with
// ${VAR} references expanded before parsing.
type Config struct {
	DataDir  string `yaml:"data_dir" validate:"required"`
	Port     int    `yaml:"port" validate:"min=1,max=65535"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	Analytics AnalyticsConfig `yaml:"analytics"`
	Fetch     FetchConfig     `yaml:"fetch"`
}

// AnalyticsConfig holds the derived-metric model parameters.
// BaseFees and PreferentialShares are percentages.
type AnalyticsConfig struct {
	BaseFees           float64 `yaml:"base_fees" validate:"gte=0,lte=100"`
	PreferentialShares float64 `yaml:"preferential_shares" validate:"gte=0,lte=100"`
	InflationFactor    float64 `yaml:"inflation_factor" validate:"gte=0"`
}

// FetchConfig holds the remote snapshot sources for the fetch command.
type FetchConfig struct {
	StakingURL string `yaml:"staking_url" validate:"omitempty,url"`
	PriceURL   string `yaml:"price_url" validate:"omitempty,url"`
}

// LoadConfig reads config from environment, overlays CONFIG_FILE when set.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DataDir:  getEnv("DATA_DIR", "offline_data"),
		Port:     getEnvInt("PORT", 8501),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Analytics: AnalyticsConfig{
			BaseFees:           getEnvFloat("BASE_FEES", 90),
			PreferentialShares: getEnvFloat("PREFERENTIAL_SHARES", 25),
			InflationFactor:    getEnvFloat("INFLATION_FACTOR", 166.3),
		},
		Fetch: FetchConfig{
			StakingURL: os.Getenv("STAKING_URL"),
			PriceURL:   os.Getenv("PRICE_URL"),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadAndValidate loads config and validates it.
func LoadAndValidate() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// overlayFile merges a YAML file over the current values.
// ${VAR} environment references inside the file are expanded first.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// Validate checks field constraints via struct tags.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// Addr returns the listen address, e.g. ":8501".
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
