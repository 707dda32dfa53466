// Package config provides configuration loading and management for gpsrgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/gpsrgen/source"
)

// Config represents the complete gpsrgen configuration
type Config struct {
	Documents  DocumentsConfig    `yaml:"documents"`
	Generation GenerationConfig   `yaml:"generation"`
	Output     OutputConfig       `yaml:"output"`
	Watch      source.WatchConfig `yaml:"watch"`
	Log        LogConfig          `yaml:"log"`
}

// DocumentsConfig locates the reference documents. Paths may be doublestar
// patterns; relative paths resolve against BaseDir.
type DocumentsConfig struct {
	// BaseDir is the data directory (defaults to the project config's directory)
	BaseDir   string `yaml:"base_dir" env:"GPSRGEN_BASE_DIR"`
	Names     string `yaml:"names" env:"GPSRGEN_NAMES"`
	Locations string `yaml:"locations" env:"GPSRGEN_LOCATIONS"`
	Rooms     string `yaml:"rooms" env:"GPSRGEN_ROOMS"`
	Objects   string `yaml:"objects" env:"GPSRGEN_OBJECTS"`
}

// Paths converts the document settings into loader input.
func (d DocumentsConfig) Paths() source.Paths {
	return source.Paths{
		Names:     d.Names,
		Locations: d.Locations,
		Rooms:     d.Rooms,
		Objects:   d.Objects,
	}
}

// GenerationConfig configures the command generator and the sampler
type GenerationConfig struct {
	// MaxConsecutiveDuplicates ends sampling after this many duplicate draws in a row
	MaxConsecutiveDuplicates int `yaml:"max_consecutive_duplicates" env:"GPSRGEN_MAX_DUPLICATES"`
	// ProgressInterval logs progress every N accepted commands (negative disables)
	ProgressInterval int `yaml:"progress_interval" env:"GPSRGEN_PROGRESS_INTERVAL"`
	// CategoryHint restricts generation to one command category (empty = all)
	CategoryHint string `yaml:"category_hint" env:"GPSRGEN_CATEGORY"`
	// Seed makes generation reproducible (0 = seed from the clock)
	Seed uint64 `yaml:"seed" env:"GPSRGEN_SEED"`
	// TemplatesFile replaces the built-in template catalog
	TemplatesFile string `yaml:"templates_file" env:"GPSRGEN_TEMPLATES"`
	// Extended adds the extended command categories
	Extended bool `yaml:"extended" env:"GPSRGEN_EXTENDED"`
}

// OutputConfig configures where the corpus goes
type OutputConfig struct {
	// Path is the corpus text file
	Path string `yaml:"path" env:"GPSRGEN_OUTPUT"`
	// MetricsFile receives a Prometheus textfile after each run (empty = off)
	MetricsFile string `yaml:"metrics_file" env:"GPSRGEN_METRICS_FILE"`
	// NATSURL publishes the corpus to NATS when set together with NATSSubject
	NATSURL string `yaml:"nats_url" env:"GPSRGEN_NATS_URL"`
	// NATSSubject is the subject each command is published on
	NATSSubject string `yaml:"nats_subject" env:"GPSRGEN_NATS_SUBJECT"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"GPSRGEN_LOG_LEVEL"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			BaseDir:   "", // Auto-detect
			Names:     "names/names.md",
			Locations: "maps/location_names.md",
			Rooms:     "maps/room_names.md",
			Objects:   "objects/objects.md",
		},
		Generation: GenerationConfig{
			MaxConsecutiveDuplicates: 10000,
			ProgressInterval:         100000,
		},
		Output: OutputConfig{
			Path: "/output/all_commands.txt",
		},
		Watch: source.DefaultWatchConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	for name, path := range map[string]string{
		"names":     c.Documents.Names,
		"locations": c.Documents.Locations,
		"rooms":     c.Documents.Rooms,
		"objects":   c.Documents.Objects,
	} {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("documents.%s is required", name)
		}
	}
	if c.Generation.MaxConsecutiveDuplicates <= 0 {
		return fmt.Errorf("generation.max_consecutive_duplicates must be positive")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Output.NATSURL != "" && c.Output.NATSSubject == "" {
		return fmt.Errorf("output.nats_subject is required when output.nats_url is set")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// loadOverlay reads a config layer without defaults so that only the keys
// present in the file are merged over lower layers.
func loadOverlay(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	overlay := &Config{}
	if err := yaml.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return overlay, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays GPSRGEN_* environment variables onto the config. Unset
// variables leave fields untouched.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Documents
	if other.Documents.BaseDir != "" {
		c.Documents.BaseDir = other.Documents.BaseDir
	}
	if other.Documents.Names != "" {
		c.Documents.Names = other.Documents.Names
	}
	if other.Documents.Locations != "" {
		c.Documents.Locations = other.Documents.Locations
	}
	if other.Documents.Rooms != "" {
		c.Documents.Rooms = other.Documents.Rooms
	}
	if other.Documents.Objects != "" {
		c.Documents.Objects = other.Documents.Objects
	}

	// Generation
	if other.Generation.MaxConsecutiveDuplicates != 0 {
		c.Generation.MaxConsecutiveDuplicates = other.Generation.MaxConsecutiveDuplicates
	}
	if other.Generation.ProgressInterval != 0 {
		c.Generation.ProgressInterval = other.Generation.ProgressInterval
	}
	if other.Generation.CategoryHint != "" {
		c.Generation.CategoryHint = other.Generation.CategoryHint
	}
	if other.Generation.Seed != 0 {
		c.Generation.Seed = other.Generation.Seed
	}
	if other.Generation.TemplatesFile != "" {
		c.Generation.TemplatesFile = other.Generation.TemplatesFile
	}
	if other.Generation.Extended {
		c.Generation.Extended = true
	}

	// Output
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.MetricsFile != "" {
		c.Output.MetricsFile = other.Output.MetricsFile
	}
	if other.Output.NATSURL != "" {
		c.Output.NATSURL = other.Output.NATSURL
	}
	if other.Output.NATSSubject != "" {
		c.Output.NATSSubject = other.Output.NATSSubject
	}

	// Watch
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
