package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file created by "faktura init".
const FileName = "faktura.yaml"

// Environment variables that override the config file.
const (
	EnvServerURL = "FAKTURA_SERVER_URL"
	EnvLogLevel  = "FAKTURA_LOG_LEVEL"
	EnvRotRut    = "FAKTURA_ROT_RUT_APPLICABLE"
)

// Config represents the top-level faktura.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Server  ServerConfig  `yaml:"server"`
	Invoice InvoiceConfig `yaml:"invoice"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
}

// CompanyConfig identifies the invoicing company.
type CompanyConfig struct {
	Name string `yaml:"name"`
}

// ServerConfig points at the invoicing server.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

// InvoiceConfig controls the local row draft.
type InvoiceConfig struct {
	ID               int    `yaml:"id,omitempty"`
	RotRutApplicable bool   `yaml:"rot_rut_applicable"`
	DraftFile        string `yaml:"draft_file"` // relative to the project root
}

// SearchConfig controls customer autocomplete.
type SearchConfig struct {
	MinLength int `yaml:"min_length"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Load reads a faktura.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{
			Name: companyName,
		},
		Server: ServerConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
			Retries: 2,
		},
		Invoice: InvoiceConfig{
			RotRutApplicable: true,
			DraftFile:        "rows.csv",
		},
		Search: SearchConfig{
			MinLength: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadEnv reads envFile into the process environment, keeping variables
// that are already set, and applies the overrides to cfg. A missing
// envFile is not an error.
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return ApplyEnv(cfg)
}

// ApplyEnv overrides cfg from FAKTURA_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvRotRut); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRotRut, err)
		}
		cfg.Invoice.RotRutApplicable = b
	}
	return nil
}
