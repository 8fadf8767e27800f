package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/nextdata/internal/decode"
	"github.com/mcncl/nextdata/internal/errors"
	"github.com/mcncl/nextdata/internal/extractor"
	"github.com/mcncl/nextdata/internal/locate"
)

// Config represents the complete configuration for nextdata
type Config struct {
	File       string   `yaml:"file"`
	Encodings  []string `yaml:"encodings"`
	Locator    string   `yaml:"locator"`
	StrictExit bool     `yaml:"strict_exit"`
	Debug      bool     `yaml:"debug"`
}

// Overrides holds values given on the command line or in the environment.
// Empty strings and slices leave the config untouched; booleans can only switch on.
type Overrides struct {
	File       string
	Encodings  []string
	Locator    string
	StrictExit bool
	Debug      bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		File:       extractor.DefaultPath,
		Encodings:  append([]string(nil), decode.DefaultOrder...),
		Locator:    locate.NameRegexp,
		StrictExit: false,
		Debug:      false,
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFileFrom(currentDir)
}

// FindConfigFileFrom searches dir and its parents for a config file
func FindConfigFileFrom(dir string) string {
	configNames := []string{".nextdata.yml", ".nextdata.yaml", "nextdata.yml", "nextdata.yaml"}

	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Apply merges overrides into the config
func (c *Config) Apply(o Overrides) {
	if o.File != "" {
		c.File = o.File
	}
	if len(o.Encodings) > 0 {
		c.Encodings = append([]string(nil), o.Encodings...)
	}
	if o.Locator != "" {
		c.Locator = o.Locator
	}
	if o.StrictExit {
		c.StrictExit = true
	}
	if o.Debug {
		c.Debug = true
	}
}

// Validate checks that every encoding and the locator are known
func (c *Config) Validate() error {
	if c.File == "" {
		return errors.NewConfigError("input file is empty", errors.ErrInvalidConfig)
	}
	if len(c.Encodings) == 0 {
		return errors.NewConfigError("at least one encoding is required", errors.ErrInvalidConfig)
	}
	for _, enc := range c.Encodings {
		if _, ok := decode.Normalize(enc); !ok {
			return errors.NewConfigError(
				fmt.Sprintf("unknown encoding '%s'", enc),
				errors.ErrUnsupportedEncoding,
			)
		}
	}
	if _, err := locate.ByName(c.Locator); err != nil {
		return errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	return nil
}

// LoadConfigWithCLI loads the config file (if any), applies command line
// overrides and validates the result. CLI values take precedence.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("cannot load '%s'", configPath), err)
		}
		cfg = fileConfig
	}

	cfg.Apply(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
