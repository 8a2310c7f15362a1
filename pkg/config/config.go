// Package config provides configuration loading and management for
// thighcsa. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Segmentation parameters
	Segmentation struct {
		// Tolerance is the region-growing intensity tolerance on the
		// quantized class grid
		Tolerance int `yaml:"tolerance"`

		// Connectivity selects the growing neighborhood, 4 or 8
		Connectivity int `yaml:"connectivity"`

		// BackgroundMargin is the crop threshold offset above the
		// image's minimum intensity
		BackgroundMargin int `yaml:"backgroundMargin"`
	} `yaml:"segmentation"`

	// Measurement parameters
	Measurement struct {
		// UnitPolicy controls how a missing pixel spacing is handled:
		// "lenient" reports raw pixel counts with a warning, "strict"
		// aborts the run
		UnitPolicy string `yaml:"unitPolicy"`
	} `yaml:"measurement"`

	// Output parameters
	Output struct {
		// Policy selects between "single-report" and
		// "append-to-study-log"
		Policy string `yaml:"policy"`

		// StudyLogPath is the CSV file runs are appended to under the
		// append-to-study-log policy
		StudyLogPath string `yaml:"studyLogPath"`

		// SaveMasks determines whether per-region overlay images are
		// written after a run
		SaveMasks bool `yaml:"saveMasks"`

		// MaskDir is the directory overlay images are written into
		MaskDir string `yaml:"maskDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// Output policies.
const (
	PolicySingleReport = "single-report"
	PolicyStudyLog     = "append-to-study-log"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default segmentation parameters
	cfg.Segmentation.Tolerance = 1
	cfg.Segmentation.Connectivity = 4
	cfg.Segmentation.BackgroundMargin = 1

	// Set default measurement parameters
	cfg.Measurement.UnitPolicy = "lenient"

	// Set default output parameters
	cfg.Output.Policy = PolicySingleReport
	cfg.Output.StudyLogPath = "study_log.csv"
	cfg.Output.SaveMasks = false
	cfg.Output.MaskDir = "masks"
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks the enumerated fields for values the pipeline can
// accept.
func (c *Config) Validate() error {
	if c.Segmentation.Connectivity != 4 && c.Segmentation.Connectivity != 8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", c.Segmentation.Connectivity)
	}
	if c.Segmentation.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %d", c.Segmentation.Tolerance)
	}
	if p := c.Measurement.UnitPolicy; p != "lenient" && p != "strict" {
		return fmt.Errorf("unit policy must be lenient or strict, got %q", p)
	}
	if p := c.Output.Policy; p != PolicySingleReport && p != PolicyStudyLog {
		return fmt.Errorf("output policy must be %s or %s, got %q",
			PolicySingleReport, PolicyStudyLog, p)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
