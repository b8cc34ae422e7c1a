//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-warehouse.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-warehouse.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// HTTP holds configuration for the serve subcommand.
	HTTP HTTPConfig `mapstructure:"http"`

	// Seed holds configuration for sample data generation.
	Seed SeedConfig `mapstructure:"seed"`

	// Quality holds configuration for the quality monitor.
	Quality QualityConfig `mapstructure:"quality"`
}

// HTTPConfig holds configuration for the HTTP API.
type HTTPConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`
}

// SeedConfig holds configuration for the sample data generator.
type SeedConfig struct {
	// Customers is the number of customer dimension rows to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of product dimension rows to generate.
	Products int `mapstructure:"products"`

	// Days is the span of the time dimension, ending today.
	Days int `mapstructure:"days"`

	// Transactions is the number of fact rows to generate.
	Transactions int `mapstructure:"transactions"`

	// Seed is the random seed for reproducible data (0 = time-based).
	Seed uint64 `mapstructure:"seed"`

	// OnEmpty seeds sample data at serve startup when the fact table
	// is empty.
	OnEmpty bool `mapstructure:"on_empty"`
}

// QualityConfig holds configuration for quality checks.
type QualityConfig struct {
	// Thresholds maps a check name to its maximum passing metric value.
	// Checks not listed here use a threshold of 0.
	Thresholds map[string]float64 `mapstructure:"thresholds"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Listen: ":8080",
		},
		Seed: SeedConfig{
			Customers:    5,
			Products:     5,
			Days:         90,
			Transactions: 200,
			Seed:         0,
			OnEmpty:      true,
		},
		Quality: QualityConfig{
			Thresholds: map[string]float64{},
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-warehouse.yaml
// 3. ~/.config/pgedge-warehouse/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-warehouse")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-warehouse"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateSeed checks configuration required for data generation.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Customers < 1 {
		return fmt.Errorf("seed.customers must be at least 1")
	}
	if c.Seed.Products < 1 {
		return fmt.Errorf("seed.products must be at least 1")
	}
	if c.Seed.Days < 1 {
		return fmt.Errorf("seed.days must be at least 1")
	}
	if c.Seed.Transactions < 0 {
		return fmt.Errorf("seed.transactions must be non-negative")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.HTTP.Listen == "" {
		return fmt.Errorf("http.listen address is required")
	}
	if c.Seed.OnEmpty {
		return c.ValidateSeed()
	}
	return nil
}
