package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment" yaml:"environment"` // "development" or "production"
	Extraction  ExtractionConfig `toml:"extraction" yaml:"extraction"`
	Storage     StorageConfig    `toml:"storage" yaml:"storage"`
	Logging     LoggingConfig    `toml:"logging" yaml:"logging"`
}

// ExtractionConfig controls the extraction pipeline behavior
type ExtractionConfig struct {
	EnableImages bool   `toml:"enable_images" yaml:"enable_images"`                                           // Extract embedded image descriptors per page
	OutputFormat string `toml:"output_format" yaml:"output_format" validate:"omitempty,oneof=json text both"` // Artifacts to write per run
	OutputDir    string `toml:"output_dir" yaml:"output_dir"`                                                 // Directory for JSON/summary artifacts
	CacheEnabled bool   `toml:"cache_enabled" yaml:"cache_enabled"`                                           // Skip reprocessing of unchanged files
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger" yaml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" yaml:"path"`                         // Database directory path
	InMemory       bool   `toml:"in_memory" yaml:"in_memory"`               // Keep the cache in memory only (no files on disk)
	ResetOnStartup bool   `toml:"reset_on_startup" yaml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output []string `toml:"output" yaml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in excerpo.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Extraction: ExtractionConfig{
			EnableImages: true,
			OutputFormat: "both",
			OutputDir:    "./extracted_content",
			CacheEnabled: true,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/cache",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier
// files. Files ending in .yaml/.yml are parsed as YAML, everything else as TOML.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, config)
		default:
			err = toml.Unmarshal(data, config)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var validate = validator.New()

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: EXCERPO_ENV, fallback: GO_ENV)
	if env := os.Getenv("EXCERPO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Extraction configuration
	if enable := os.Getenv("EXCERPO_ENABLE_IMAGES"); enable != "" {
		if b, err := strconv.ParseBool(enable); err == nil {
			config.Extraction.EnableImages = b
		}
	}
	if format := os.Getenv("EXCERPO_OUTPUT_FORMAT"); format != "" {
		config.Extraction.OutputFormat = format
	}
	if dir := os.Getenv("EXCERPO_OUTPUT_DIR"); dir != "" {
		config.Extraction.OutputDir = dir
	}
	if cache := os.Getenv("EXCERPO_CACHE_ENABLED"); cache != "" {
		if b, err := strconv.ParseBool(cache); err == nil {
			config.Extraction.CacheEnabled = b
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("EXCERPO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("EXCERPO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("EXCERPO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
