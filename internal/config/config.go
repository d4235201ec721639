package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/pancakebitgit/escaner/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Scanner ScannerConfig `yaml:"scanner" envconfig:"SCANNER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ScannerConfig contains scan run configuration
type ScannerConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputBOM bool   `yaml:"output_bom" envconfig:"OUTPUT_BOM"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

var validate = validator.New()

// Default returns the built-in configuration, before any file or
// environment overrides.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			DataDir:   "data",
			OutputBOM: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/scanner.log",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML config file, then DARKPOOL_* environment variables, which
// take precedence over everything else.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, errors.NewConfigError("failed to load config from file", err)
			}
		}
	}

	if err := envconfig.Process("DARKPOOL", cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file. Keys absent from
// the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}
